package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
)

// UsuarioRepository acceso a datos de usuarios
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	GetByID(ctx context.Context, id int64) (*model.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	List(ctx context.Context) ([]model.Usuario, error)
	Count(ctx context.Context) (int64, error)
}

// usuarioRepo implementación GORM de UsuarioRepository
type usuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepo crea una instancia de UsuarioRepository
func NewUsuarioRepo(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepo) GetByID(ctx context.Context, id int64) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Where("id_usuario = ?", id).
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepo) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepo) Update(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Order("id_usuario ASC").
		Find(&usuarios).Error
	if err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (r *usuarioRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&total).Error
	return total, err
}
