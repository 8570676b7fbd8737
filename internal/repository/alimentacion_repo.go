package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
)

// AlimentacionRepository acceso a datos de registros de alimentación
type AlimentacionRepository interface {
	Create(ctx context.Context, comida *model.Alimentacion) error
	ListarPorRango(ctx context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.Alimentacion, error)
}

// alimentacionRepo implementación GORM de AlimentacionRepository
type alimentacionRepo struct {
	db *gorm.DB
}

// NewAlimentacionRepo crea una instancia de AlimentacionRepository
func NewAlimentacionRepo(db *gorm.DB) AlimentacionRepository {
	return &alimentacionRepo{db: db}
}

func (r *alimentacionRepo) Create(ctx context.Context, comida *model.Alimentacion) error {
	return r.db.WithContext(ctx).Create(comida).Error
}

func (r *alimentacionRepo) ListarPorRango(ctx context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.Alimentacion, error) {
	q := r.db.WithContext(ctx).Where("id_usuario = ?", idUsuario)
	if desde != "" && hasta != "" {
		q = q.Where("fecha >= ? AND fecha <= ?", desde, hasta)
	}

	var comidas []model.Alimentacion
	if err := q.Order("fecha DESC").Find(&comidas).Error; err != nil {
		return nil, err
	}
	return comidas, nil
}
