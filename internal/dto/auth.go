package dto

// ── DTO del módulo de autenticación ──

// RegistroRequest solicitud de registro de usuario
type RegistroRequest struct {
	Nombre     string   `json:"nombre"     binding:"required,min=1,max=100"`
	Apellido   string   `json:"apellido"   binding:"required,min=1,max=100"`
	Email      string   `json:"email"      binding:"required,email,max=150"`
	Contrasena string   `json:"contrasena" binding:"required,min=8,max=72"`
	Edad       *int     `json:"edad"       binding:"omitempty,min=0,max=130"`
	Sexo       *string  `json:"sexo"       binding:"omitempty,oneof=Hombre Mujer Otro"`
	Peso       *float64 `json:"peso"       binding:"omitempty,min=0,max=500"`
	Altura     *float64 `json:"altura"     binding:"omitempty,min=0,max=300"`
}

// LoginRequest solicitud de inicio de sesión
type LoginRequest struct {
	Email      string `json:"email"      binding:"required,email"`
	Contrasena string `json:"contrasena" binding:"required,min=1"`
}

// TokenResponse respuesta de autenticación con par de tokens
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"`
	Usuario      UsuarioResponse `json:"usuario"`
	EsAdmin      bool            `json:"es_admin"`
}
