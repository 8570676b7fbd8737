package handler

import "github.com/EmmanuelQuintero/Control-Plus-7/internal/service"

// Handler punto de entrada a todos los handlers HTTP
type Handler struct {
	Auth         *AuthHandler
	Usuario      *UsuarioHandler
	Salud        *SaludHandler
	Notificacion *NotificacionHandler
	Admin        *AdminHandler
}

// NewHandler crea el agregado de handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Usuario:      NewUsuarioHandler(svc.Usuario),
		Salud:        NewSaludHandler(svc.Salud),
		Notificacion: NewNotificacionHandler(svc.Notificacion),
		Admin:        NewAdminHandler(svc.Admin, svc.Notificacion),
	}
}
