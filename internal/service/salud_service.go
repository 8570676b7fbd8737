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

// SaludService registros diarios de actividad, sueño y alimentación
//
// Cada escritura dispara la evaluación de notificaciones en segundo plano
// con el valor recién escrito como contexto; la respuesta HTTP no la espera.
type SaludService interface {
	RegistrarActividad(ctx context.Context, idUsuario int64, req *dto.RegistrarActividadRequest) error
	RegistrarSueno(ctx context.Context, idUsuario int64, req *dto.RegistrarSuenoRequest) error
	RegistrarComida(ctx context.Context, idUsuario int64, req *dto.RegistrarComidaRequest) error

	ListarActividad(ctx context.Context, idUsuario int64, desde, hasta string) ([]model.ActividadFisica, error)
	ListarSueno(ctx context.Context, idUsuario int64, desde, hasta string) ([]model.Sueno, error)
	ListarAlimentacion(ctx context.Context, idUsuario int64, desde, hasta string) ([]model.Alimentacion, error)
}

type saludService struct {
	repo     *repository.Repository
	notifSvc NotificacionService
	logger   *zap.Logger
}

// NewSaludService crea una instancia de SaludService
func NewSaludService(repo *repository.Repository, notifSvc NotificacionService, logger *zap.Logger) SaludService {
	return &saludService{repo: repo, notifSvc: notifSvc, logger: logger}
}

// ────────────────────── RegistrarActividad ──────────────────────

func (s *saludService) RegistrarActividad(ctx context.Context, idUsuario int64, req *dto.RegistrarActividadRequest) error {
	if err := s.verificarUsuario(ctx, idUsuario); err != nil {
		return err
	}

	actividad := &model.ActividadFisica{
		IDUsuario:       idUsuario,
		Fecha:           model.Fecha(req.Fecha),
		Pasos:           req.Pasos,
		DuracionMinutos: req.DuracionMinutos,
	}
	if err := s.repo.Actividad.Upsert(ctx, actividad); err != nil {
		s.logger.Error("error registrando actividad física", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}

	// Evaluar la fecha registrada con los pasos recién escritos como contexto
	s.notifSvc.EvaluarDiaEnSegundoPlano(idUsuario, model.Fecha(req.Fecha), &ContextoEvaluacion{Pasos: req.Pasos})

	return nil
}

// ────────────────────── RegistrarSueno ──────────────────────

func (s *saludService) RegistrarSueno(ctx context.Context, idUsuario int64, req *dto.RegistrarSuenoRequest) error {
	if err := s.verificarUsuario(ctx, idUsuario); err != nil {
		return err
	}

	sueno := &model.Sueno{
		IDUsuario:     idUsuario,
		Fecha:         model.Fecha(req.Fecha),
		HorasDormidas: req.HorasDormidas,
	}
	if err := s.repo.Sueno.Upsert(ctx, sueno); err != nil {
		s.logger.Error("error registrando sueño", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}

	s.notifSvc.EvaluarDiaEnSegundoPlano(idUsuario, model.Fecha(req.Fecha), &ContextoEvaluacion{HorasDormidas: req.HorasDormidas})

	return nil
}

// ────────────────────── RegistrarComida ──────────────────────

func (s *saludService) RegistrarComida(ctx context.Context, idUsuario int64, req *dto.RegistrarComidaRequest) error {
	if err := s.verificarUsuario(ctx, idUsuario); err != nil {
		return err
	}

	comida := &model.Alimentacion{
		IDUsuario:     idUsuario,
		Fecha:         model.Fecha(req.Fecha),
		Comida:        req.Comida,
		Descripcion:   req.Descripcion,
		Calorias:      req.Calorias,
		Proteinas:     req.Proteinas,
		Grasas:        req.Grasas,
		Carbohidratos: req.Carbohidratos,
	}
	if err := s.repo.Alimentacion.Create(ctx, comida); err != nil {
		s.logger.Error("error registrando alimentación", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}

	// Total del día incluyendo la comida recién insertada
	comidas, err := s.repo.Alimentacion.ListarPorRango(ctx, idUsuario, model.Fecha(req.Fecha), model.Fecha(req.Fecha))
	if err != nil {
		// La comida ya quedó registrada; la evaluación corre sin contexto
		s.logger.Warn("no se pudo calcular el total calórico del día", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		s.notifSvc.EvaluarDiaEnSegundoPlano(idUsuario, model.Fecha(req.Fecha), nil)
		return nil
	}

	var total float64
	for _, c := range comidas {
		if c.Calorias != nil {
			total += *c.Calorias
		}
	}
	s.notifSvc.EvaluarDiaEnSegundoPlano(idUsuario, model.Fecha(req.Fecha), &ContextoEvaluacion{TotalCalorias: &total})

	return nil
}

// ── Históricos ──

func (s *saludService) ListarActividad(ctx context.Context, idUsuario int64, desde, hasta string) ([]model.ActividadFisica, error) {
	actividades, err := s.repo.Actividad.ListarPorRango(ctx, idUsuario, model.Fecha(desde), model.Fecha(hasta))
	if err != nil {
		s.logger.Error("error consultando actividad física", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return nil, err
	}
	return actividades, nil
}

func (s *saludService) ListarSueno(ctx context.Context, idUsuario int64, desde, hasta string) ([]model.Sueno, error) {
	suenos, err := s.repo.Sueno.ListarPorRango(ctx, idUsuario, model.Fecha(desde), model.Fecha(hasta))
	if err != nil {
		s.logger.Error("error consultando sueño", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return nil, err
	}
	return suenos, nil
}

func (s *saludService) ListarAlimentacion(ctx context.Context, idUsuario int64, desde, hasta string) ([]model.Alimentacion, error) {
	comidas, err := s.repo.Alimentacion.ListarPorRango(ctx, idUsuario, model.Fecha(desde), model.Fecha(hasta))
	if err != nil {
		s.logger.Error("error consultando alimentación", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return nil, err
	}
	return comidas, nil
}

// ── Métodos auxiliares internos ──

func (s *saludService) verificarUsuario(ctx context.Context, idUsuario int64) error {
	if _, err := s.repo.Usuario.GetByID(ctx, idUsuario); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		s.logger.Error("error consultando usuario", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}
	return nil
}
