package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/service"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// NotificacionHandler handlers HTTP del módulo de notificaciones
type NotificacionHandler struct {
	notifSvc service.NotificacionService
}

// NewNotificacionHandler crea el NotificacionHandler
func NewNotificacionHandler(notifSvc service.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notifSvc: notifSvc}
}

// Listar notificaciones del usuario autenticado, de más reciente a más antigua
// GET /api/v1/notificaciones?desde=<ISO-8601>
func (h *NotificacionHandler) Listar(c *gin.Context) {
	idUsuario, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ListarNotificacionesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	notificaciones, err := h.notifSvc.Listar(c.Request.Context(), idUsuario, req.Desde)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			response.NotFound(c, 11003, "usuario no encontrado")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, notificaciones)
}

// MarcarLeidas marca como leídas las notificaciones indicadas del usuario
// PUT /api/v1/notificaciones/leidas
func (h *NotificacionHandler) MarcarLeidas(c *gin.Context) {
	idUsuario, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarcarLeidasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	cantidad, err := h.notifSvc.MarcarLeidas(c.Request.Context(), idUsuario, req.IDs)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.MarcarLeidasResponse{Cantidad: cantidad})
}
