package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/EmmanuelQuintero/Control-Plus-7/config"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/jwt"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/redis"
)

// ── Errores del módulo de autenticación ──

var (
	ErrCredencialesInvalidas = errors.New("email o contraseña incorrectos")
	ErrEmailYaRegistrado     = errors.New("el email ya está registrado")
)

// AuthService autenticación y registro de usuarios
type AuthService interface {
	Registro(ctx context.Context, req *dto.RegistroRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout agrega el token a la lista negra hasta su expiración
	Logout(ctx context.Context, jti string, expira time.Time) error
	GetCurrentUser(ctx context.Context, idUsuario int64) (*dto.UsuarioResponse, error)
}

type authService struct {
	cfg      *config.Config
	repo     *repository.Repository
	jwtMgr   *jwt.Manager
	rdb      *redis.Client
	notifSvc NotificacionService
	logger   *zap.Logger
}

// NewAuthService crea una instancia de AuthService
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	notifSvc NotificacionService,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		repo:     repo,
		jwtMgr:   jwtMgr,
		rdb:      rdb,
		notifSvc: notifSvc,
		logger:   logger,
	}
}

// ────────────────────── Registro ──────────────────────

func (s *authService) Registro(ctx context.Context, req *dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	// Verificar unicidad del email
	if _, err := s.repo.Usuario.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailYaRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("error consultando usuario por email", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("error generando hash de contraseña", zap.Error(err))
		return nil, err
	}

	usuario := &model.Usuario{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Email:      req.Email,
		Contrasena: string(hash),
		Edad:       req.Edad,
		Sexo:       req.Sexo,
		Peso:       req.Peso,
		Altura:     req.Altura,
		Rol:        model.RolUsuario,
	}

	if err := s.repo.Usuario.Create(ctx, usuario); err != nil {
		s.logger.Error("error creando usuario", zap.Error(err))
		return nil, err
	}

	// Aviso administrativo de alta de usuario; mejor esfuerzo
	s.notifSvc.AnunciarNuevoUsuario(ctx, usuario)

	return toUsuarioResponse(usuario), nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	usuario, err := s.repo.Usuario.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		s.logger.Error("error consultando usuario por email", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(req.Contrasena)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(usuario.IDUsuario, usuario.Rol)
	if err != nil {
		s.logger.Error("error generando access token", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(usuario.IDUsuario, usuario.Rol)
	if err != nil {
		s.logger.Error("error generando refresh token", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Usuario:      *toUsuarioResponse(usuario),
		EsAdmin:      usuario.EsAdmin(),
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expira time.Time) error {
	if s.rdb == nil {
		// Sin Redis el logout queda del lado del cliente
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expira))
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, idUsuario int64) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, idUsuario)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		s.logger.Error("error consultando usuario", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// ── Métodos auxiliares internos ──

func toUsuarioResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:       u.IDUsuario,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Email:    u.Email,
		Edad:     u.Edad,
		Sexo:     u.Sexo,
		Peso:     u.Peso,
		Altura:   u.Altura,
		Rol:      u.Rol,
	}
}
