package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
)

// ── Errores del módulo de usuarios ──

var ErrSinPermiso = errors.New("sin permiso para esta operación")

// UsuarioService perfil de usuario
type UsuarioService interface {
	// Actualizar aplica una actualización parcial del perfil.
	// Un usuario solo puede modificar su propio perfil; un Admin, cualquiera.
	Actualizar(ctx context.Context, id int64, req *dto.ActualizarUsuarioRequest, callerID int64, callerRol string) (*dto.UsuarioResponse, error)
}

type usuarioService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUsuarioService crea una instancia de UsuarioService
func NewUsuarioService(repo *repository.Repository, logger *zap.Logger) UsuarioService {
	return &usuarioService{repo: repo, logger: logger}
}

// ────────────────────── Actualizar ──────────────────────

func (s *usuarioService) Actualizar(ctx context.Context, id int64, req *dto.ActualizarUsuarioRequest, callerID int64, callerRol string) (*dto.UsuarioResponse, error) {
	if callerRol != model.RolAdmin && callerID != id {
		return nil, ErrSinPermiso
	}

	usuario, err := s.repo.Usuario.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		s.logger.Error("error consultando usuario", zap.Int64("id_usuario", id), zap.Error(err))
		return nil, err
	}

	// Aplicar solo los campos presentes
	if req.Nombre != nil {
		usuario.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		usuario.Apellido = *req.Apellido
	}
	if req.Email != nil {
		// Verificar unicidad del nuevo email
		existente, err := s.repo.Usuario.GetByEmail(ctx, *req.Email)
		if err == nil && existente.IDUsuario != id {
			return nil, ErrEmailYaRegistrado
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		usuario.Email = *req.Email
	}
	if req.Edad != nil {
		usuario.Edad = req.Edad
	}
	if req.Sexo != nil {
		usuario.Sexo = req.Sexo
	}
	if req.Peso != nil {
		usuario.Peso = req.Peso
	}
	if req.Altura != nil {
		usuario.Altura = req.Altura
	}

	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		s.logger.Error("error actualizando usuario", zap.Int64("id_usuario", id), zap.Error(err))
		return nil, err
	}

	return toUsuarioResponse(usuario), nil
}
