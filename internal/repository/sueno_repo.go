package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
)

// SuenoRepository acceso a datos de registros de sueño
type SuenoRepository interface {
	// Upsert inserta el registro del día o sobreescribe las horas dormidas
	// si ya existe para (id_usuario, fecha).
	Upsert(ctx context.Context, sueno *model.Sueno) error
	ListarPorRango(ctx context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.Sueno, error)
}

// suenoRepo implementación GORM de SuenoRepository
type suenoRepo struct {
	db *gorm.DB
}

// NewSuenoRepo crea una instancia de SuenoRepository
func NewSuenoRepo(db *gorm.DB) SuenoRepository {
	return &suenoRepo{db: db}
}

func (r *suenoRepo) Upsert(ctx context.Context, sueno *model.Sueno) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_usuario"}, {Name: "fecha"}},
		DoUpdates: clause.AssignmentColumns([]string{"horas_dormidas"}),
	}).Create(sueno).Error
}

func (r *suenoRepo) ListarPorRango(ctx context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.Sueno, error) {
	q := r.db.WithContext(ctx).Where("id_usuario = ?", idUsuario)
	if desde != "" && hasta != "" {
		q = q.Where("fecha >= ? AND fecha <= ?", desde, hasta)
	}

	var suenos []model.Sueno
	if err := q.Order("fecha DESC").Find(&suenos).Error; err != nil {
		return nil, err
	}
	return suenos, nil
}
