package repository

import "gorm.io/gorm"

// Repository punto de agregación de todos los repositorios
type Repository struct {
	Usuario      UsuarioRepository
	Actividad    ActividadRepository
	Sueno        SuenoRepository
	Alimentacion AlimentacionRepository
	Notificacion NotificacionRepository
}

// NewRepository crea la agregación de repositorios
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Usuario:      NewUsuarioRepo(db),
		Actividad:    NewActividadRepo(db),
		Sueno:        NewSuenoRepo(db),
		Alimentacion: NewAlimentacionRepo(db),
		Notificacion: NewNotificacionRepo(db),
	}
}
