package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/service"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// AuthHandler handlers HTTP del módulo de autenticación
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler crea el AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Registro alta de usuario
// POST /api/v1/auth/registro
func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	usuario, err := h.authSvc.Registro(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailYaRegistrado) {
			response.Conflict(c, 11002, "el email ya está registrado")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, usuario)
}

// Login inicio de sesión
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCredencialesInvalidas) {
			response.Error(c, http.StatusUnauthorized, 11001, "email o contraseña incorrectos")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout cierre de sesión. Revoca el access token actual.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expira, ok := exp.(time.Time)
	if jti == "" || !ok {
		response.Unauthorized(c, 10002, "no autenticado")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expira); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me perfil del usuario autenticado
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	idUsuario, ok := MustGetUserID(c)
	if !ok {
		return
	}

	usuario, err := h.authSvc.GetCurrentUser(c.Request.Context(), idUsuario)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			response.NotFound(c, 11003, "usuario no encontrado")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, usuario)
}
