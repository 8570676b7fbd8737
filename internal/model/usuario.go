package model

// Usuario tabla de usuarios — corresponde a usuarios
type Usuario struct {
	IDUsuario  int64    `gorm:"primaryKey;autoIncrement"                        json:"id_usuario"`
	Nombre     string   `gorm:"type:varchar(100);not null"                      json:"nombre"`
	Apellido   string   `gorm:"type:varchar(100);not null"                      json:"apellido"`
	Email      string   `gorm:"type:varchar(150);not null;uniqueIndex"          json:"email"`
	Contrasena string   `gorm:"type:varchar(255);not null"                      json:"-"`
	Edad       *int     `gorm:""                                                json:"edad,omitempty"`
	Sexo       *string  `gorm:"type:varchar(10)"                                json:"sexo,omitempty"` // Hombre | Mujer | Otro
	Peso       *float64 `gorm:"type:numeric(5,2)"                               json:"peso,omitempty"`
	Altura     *float64 `gorm:"type:numeric(5,2)"                               json:"altura,omitempty"`
	Rol        string   `gorm:"type:varchar(10);not null;default:'Usuario'"     json:"rol"` // Usuario | Admin
}

// TableName nombre de la tabla
func (Usuario) TableName() string { return "usuarios" }

// EsAdmin indica si el usuario tiene rol de administrador
func (u *Usuario) EsAdmin() bool { return u.Rol == RolAdmin }
