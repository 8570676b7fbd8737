package dto

// ── DTO del módulo de usuarios ──

// UsuarioResponse representación pública del usuario (sin contraseña)
type UsuarioResponse struct {
	ID       int64    `json:"id_usuario"`
	Nombre   string   `json:"nombre"`
	Apellido string   `json:"apellido"`
	Email    string   `json:"email"`
	Edad     *int     `json:"edad,omitempty"`
	Sexo     *string  `json:"sexo,omitempty"`
	Peso     *float64 `json:"peso,omitempty"`
	Altura   *float64 `json:"altura,omitempty"`
	Rol      string   `json:"rol"`
}

// ActualizarUsuarioRequest actualización parcial del perfil
// Solo se aplican los campos no nulos; contraseña y rol quedan fuera.
type ActualizarUsuarioRequest struct {
	Nombre   *string  `json:"nombre"   binding:"omitempty,min=1,max=100"`
	Apellido *string  `json:"apellido" binding:"omitempty,min=1,max=100"`
	Email    *string  `json:"email"    binding:"omitempty,email,max=150"`
	Edad     *int     `json:"edad"     binding:"omitempty,min=0,max=130"`
	Sexo     *string  `json:"sexo"     binding:"omitempty,oneof=Hombre Mujer Otro"`
	Peso     *float64 `json:"peso"     binding:"omitempty,min=0,max=500"`
	Altura   *float64 `json:"altura"   binding:"omitempty,min=0,max=300"`
}
