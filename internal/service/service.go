package service

import (
	"go.uber.org/zap"

	"github.com/EmmanuelQuintero/Control-Plus-7/config"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/jwt"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/mailer"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/redis"
)

// Service punto de entrada a todos los servicios
type Service struct {
	Auth         AuthService
	Usuario      UsuarioService
	Salud        SaludService
	Notificacion NotificacionService
	Admin        AdminService
}

// NewService crea el agregado de servicios
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m mailer.Mailer,
	logger *zap.Logger,
) *Service {
	notif := NewNotificacionService(repo, logger, cfg.Notificaciones.Timezone)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, notif, logger),
		Usuario:      NewUsuarioService(repo, logger),
		Salud:        NewSaludService(repo, notif, logger),
		Notificacion: notif,
		Admin:        NewAdminService(repo, m, logger),
	}
}
