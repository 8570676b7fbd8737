package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
)

// ActividadRepository acceso a datos de actividad física
type ActividadRepository interface {
	// Upsert inserta el registro del día o, si ya existe para
	// (id_usuario, fecha), sobreescribe pasos y duración.
	Upsert(ctx context.Context, actividad *model.ActividadFisica) error
	ListarPorRango(ctx context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.ActividadFisica, error)
}

// actividadRepo implementación GORM de ActividadRepository
type actividadRepo struct {
	db *gorm.DB
}

// NewActividadRepo crea una instancia de ActividadRepository
func NewActividadRepo(db *gorm.DB) ActividadRepository {
	return &actividadRepo{db: db}
}

func (r *actividadRepo) Upsert(ctx context.Context, actividad *model.ActividadFisica) error {
	// Apoyado en el índice único (id_usuario, fecha); sin ventana de carrera
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_usuario"}, {Name: "fecha"}},
		DoUpdates: clause.AssignmentColumns([]string{"pasos", "duracion_minutos"}),
	}).Create(actividad).Error
}

func (r *actividadRepo) ListarPorRango(ctx context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.ActividadFisica, error) {
	q := r.db.WithContext(ctx).Where("id_usuario = ?", idUsuario)
	if desde != "" && hasta != "" {
		q = q.Where("fecha >= ? AND fecha <= ?", desde, hasta)
	}

	var actividades []model.ActividadFisica
	if err := q.Order("fecha DESC").Find(&actividades).Error; err != nil {
		return nil, err
	}
	return actividades, nil
}
