package model

import "time"

// ── Tipos de notificación ──

const (
	TipoActividad    = "actividad"
	TipoSueno        = "sueno"
	TipoAlimentacion = "alimentacion"
	TipoGeneral      = "general"
)

// Notificacion notificación en aplicación — corresponde a notificaciones
//
// DedupeKey identifica "esta regla, este usuario, este día". Cuando está
// presente existe a lo sumo una fila viva por (id_usuario, dedupe_key);
// el índice único respalda el upsert atómico. Sin clave cada llamada
// inserta una fila nueva (difusiones del administrador).
type Notificacion struct {
	IDNotificacion int64     `gorm:"primaryKey;autoIncrement"                                    json:"id_notificacion"`
	IDUsuario      int64     `gorm:"not null;uniqueIndex:uniq_notif_usuario_dedupe"              json:"id_usuario"`
	Tipo           string    `gorm:"type:varchar(15);not null;default:'general'"                 json:"tipo"`
	Titulo         string    `gorm:"type:varchar(200);not null"                                  json:"titulo"`
	Mensaje        string    `gorm:"type:varchar(1000);not null"                                 json:"mensaje"`
	FechaCreacion  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                          json:"fecha_creacion"`
	Leida          bool      `gorm:"not null;default:false"                                      json:"leida"`
	DedupeKey      *string   `gorm:"type:varchar(255);uniqueIndex:uniq_notif_usuario_dedupe"     json:"dedupe_key,omitempty"`
}

// TableName nombre de la tabla
func (Notificacion) TableName() string { return "notificaciones" }
