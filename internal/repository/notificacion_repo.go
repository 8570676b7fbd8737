package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
)

// maxNotificacionesListado tope del listado más reciente por usuario
const maxNotificacionesListado = 50

// NotificacionRepository acceso a datos de notificaciones
//
// El contrato central es Upsert: para una notificación con dedupe_key,
// (id_usuario, dedupe_key) tiene a lo sumo una fila viva en todo momento.
type NotificacionRepository interface {
	// Upsert inserta la notificación; si ya existe una fila con el mismo
	// (id_usuario, dedupe_key) sobreescribe título, mensaje y tipo, fuerza
	// leida=false y reinicia fecha_creacion. Sin dedupe_key siempre inserta.
	Upsert(ctx context.Context, notificacion *model.Notificacion) error
	// MarcarLeidaPorClave marca como leída la fila con esa clave.
	// Devuelve 0 sin error si la fila no existe.
	MarcarLeidaPorClave(ctx context.Context, idUsuario int64, clave string) (int64, error)
	// MarcarLeidas marca como leídas las notificaciones indicadas del usuario.
	MarcarLeidas(ctx context.Context, idUsuario int64, ids []int64) (int64, error)
	// Listar devuelve hasta 50 notificaciones del usuario, más recientes
	// primero; con desde != nil solo las posteriores a ese instante.
	Listar(ctx context.Context, idUsuario int64, desde *time.Time) ([]model.Notificacion, error)
}

// notificacionRepo implementación GORM de NotificacionRepository
type notificacionRepo struct {
	db *gorm.DB
}

// NewNotificacionRepo crea una instancia de NotificacionRepository
func NewNotificacionRepo(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Upsert(ctx context.Context, notificacion *model.Notificacion) error {
	if notificacion.Tipo == "" {
		notificacion.Tipo = model.TipoGeneral
	}

	if notificacion.DedupeKey == nil {
		return r.db.WithContext(ctx).Create(notificacion).Error
	}

	// INSERT ... ON CONFLICT sobre el índice único (id_usuario, dedupe_key):
	// la verificación de existencia y la escritura son una sola sentencia,
	// sin ventana de carrera entre evaluaciones concurrentes del mismo día.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id_usuario"}, {Name: "dedupe_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"titulo":         notificacion.Titulo,
			"mensaje":        notificacion.Mensaje,
			"tipo":           notificacion.Tipo,
			"leida":          false,
			"fecha_creacion": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(notificacion).Error
}

func (r *notificacionRepo) MarcarLeidaPorClave(ctx context.Context, idUsuario int64, clave string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("id_usuario = ? AND dedupe_key = ?", idUsuario, clave).
		Update("leida", true)
	return res.RowsAffected, res.Error
}

func (r *notificacionRepo) MarcarLeidas(ctx context.Context, idUsuario int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("id_usuario = ? AND id_notificacion IN ?", idUsuario, ids).
		Update("leida", true)
	return res.RowsAffected, res.Error
}

func (r *notificacionRepo) Listar(ctx context.Context, idUsuario int64, desde *time.Time) ([]model.Notificacion, error) {
	q := r.db.WithContext(ctx).Where("id_usuario = ?", idUsuario)
	if desde != nil {
		q = q.Where("fecha_creacion > ?", *desde)
	}

	var notificaciones []model.Notificacion
	err := q.Order("fecha_creacion DESC").
		Limit(maxNotificacionesListado).
		Find(&notificaciones).Error
	if err != nil {
		return nil, err
	}
	return notificaciones, nil
}
