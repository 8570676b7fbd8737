package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/service"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// AdminHandler handlers HTTP del panel de administración
type AdminHandler struct {
	adminSvc service.AdminService
	notifSvc service.NotificacionService
}

// NewAdminHandler crea el AdminHandler
func NewAdminHandler(adminSvc service.AdminService, notifSvc service.NotificacionService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, notifSvc: notifSvc}
}

// Estadisticas estadísticas básicas del sistema
// GET /api/v1/admin/estadisticas
func (h *AdminHandler) Estadisticas(c *gin.Context) {
	stats, err := h.adminSvc.Estadisticas(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// ListarUsuarios padrón completo de usuarios
// GET /api/v1/admin/usuarios
func (h *AdminHandler) ListarUsuarios(c *gin.Context) {
	usuarios, err := h.adminSvc.ListarUsuarios(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, usuarios)
}

// EnviarDifusion difusión por correo más notificación en aplicación
// POST /api/v1/admin/difusion
func (h *AdminHandler) EnviarDifusion(c *gin.Context) {
	var req dto.DifusionCorreoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	result, err := h.adminSvc.EnviarDifusion(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDifusionSinDestinatarios) {
			response.NotFound(c, 12001, "no se encontraron usuarios con los IDs proporcionados")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportarUsuarios descarga del padrón de usuarios en .xlsx
// GET /api/v1/admin/usuarios/exportar
func (h *AdminHandler) ExportarUsuarios(c *gin.Context) {
	buf, filename, err := h.adminSvc.ExportarUsuarios(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// EjecutarBarrido dispara manualmente la evaluación de "ayer" para todos
// los usuarios
// POST /api/v1/admin/notificaciones/barrido
func (h *AdminHandler) EjecutarBarrido(c *gin.Context) {
	if err := h.notifSvc.EjecutarBarrido(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
