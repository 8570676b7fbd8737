package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/service"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// UsuarioHandler handlers HTTP del perfil de usuario
type UsuarioHandler struct {
	usuarioSvc service.UsuarioService
}

// NewUsuarioHandler crea el UsuarioHandler
func NewUsuarioHandler(usuarioSvc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioSvc: usuarioSvc}
}

// Actualizar actualización parcial del perfil
// PUT /api/v1/usuarios/:id_usuario
func (h *UsuarioHandler) Actualizar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id_usuario"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "id_usuario inválido")
		return
	}

	var req dto.ActualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRol, ok := MustGetRol(c)
	if !ok {
		return
	}

	usuario, err := h.usuarioSvc.Actualizar(c.Request.Context(), id, &req, callerID, callerRol)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSinPermiso):
			response.Forbidden(c, 10003, "sin permiso para esta operación")
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			response.NotFound(c, 11003, "usuario no encontrado")
		case errors.Is(err, service.ErrEmailYaRegistrado):
			response.Conflict(c, 11002, "el email ya está registrado")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, usuario)
}
