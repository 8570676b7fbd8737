package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/service"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// SaludHandler handlers HTTP de los registros diarios de salud
type SaludHandler struct {
	saludSvc service.SaludService
}

// NewSaludHandler crea el SaludHandler
func NewSaludHandler(saludSvc service.SaludService) *SaludHandler {
	return &SaludHandler{saludSvc: saludSvc}
}

// RegistrarActividad registra o sobreescribe la actividad del día
// POST /api/v1/salud/actividad
func (h *SaludHandler) RegistrarActividad(c *gin.Context) {
	idUsuario, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RegistrarActividadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	if err := h.saludSvc.RegistrarActividad(c.Request.Context(), idUsuario, &req); err != nil {
		h.responderErrorRegistro(c, err)
		return
	}

	response.Created(c, nil)
}

// RegistrarSueno registra o sobreescribe las horas de sueño del día
// POST /api/v1/salud/sueno
func (h *SaludHandler) RegistrarSueno(c *gin.Context) {
	idUsuario, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RegistrarSuenoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	if err := h.saludSvc.RegistrarSueno(c.Request.Context(), idUsuario, &req); err != nil {
		h.responderErrorRegistro(c, err)
		return
	}

	response.Created(c, nil)
}

// RegistrarComida registra una comida del día
// POST /api/v1/salud/comidas
func (h *SaludHandler) RegistrarComida(c *gin.Context) {
	idUsuario, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RegistrarComidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	if err := h.saludSvc.RegistrarComida(c.Request.Context(), idUsuario, &req); err != nil {
		h.responderErrorRegistro(c, err)
		return
	}

	response.Created(c, nil)
}

// ── Históricos ──

// ListarActividad histórico de actividad física
// GET /api/v1/salud/actividad/:id_usuario?desde=...&hasta=...
func (h *SaludHandler) ListarActividad(c *gin.Context) {
	objetivo, rango, ok := h.resolverConsulta(c)
	if !ok {
		return
	}

	actividades, err := h.saludSvc.ListarActividad(c.Request.Context(), objetivo, rango.Desde, rango.Hasta)
	if err != nil {
		response.InternalError(c)
		return
	}
	if actividades == nil {
		actividades = []model.ActividadFisica{}
	}

	response.OK(c, actividades)
}

// ListarSueno histórico de sueño
// GET /api/v1/salud/sueno/:id_usuario?desde=...&hasta=...
func (h *SaludHandler) ListarSueno(c *gin.Context) {
	objetivo, rango, ok := h.resolverConsulta(c)
	if !ok {
		return
	}

	suenos, err := h.saludSvc.ListarSueno(c.Request.Context(), objetivo, rango.Desde, rango.Hasta)
	if err != nil {
		response.InternalError(c)
		return
	}
	if suenos == nil {
		suenos = []model.Sueno{}
	}

	response.OK(c, suenos)
}

// ListarAlimentacion histórico de comidas
// GET /api/v1/salud/comidas/:id_usuario?desde=...&hasta=...
func (h *SaludHandler) ListarAlimentacion(c *gin.Context) {
	objetivo, rango, ok := h.resolverConsulta(c)
	if !ok {
		return
	}

	comidas, err := h.saludSvc.ListarAlimentacion(c.Request.Context(), objetivo, rango.Desde, rango.Hasta)
	if err != nil {
		response.InternalError(c)
		return
	}
	if comidas == nil {
		comidas = []model.Alimentacion{}
	}

	response.OK(c, comidas)
}

// ── Métodos auxiliares internos ──

// resolverConsulta valida el id_usuario de la ruta, comprueba que quien
// consulta sea el dueño del registro o un administrador y extrae el rango
// de fechas opcional.
func (h *SaludHandler) resolverConsulta(c *gin.Context) (int64, *dto.RangoFechasRequest, bool) {
	objetivo, err := strconv.ParseInt(c.Param("id_usuario"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "id_usuario inválido")
		return 0, nil, false
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return 0, nil, false
	}
	callerRol, ok := MustGetRol(c)
	if !ok {
		return 0, nil, false
	}
	if callerID != objetivo && callerRol != model.RolAdmin {
		response.Forbidden(c, 10003, "sin permiso para consultar estos registros")
		return 0, nil, false
	}

	var rango dto.RangoFechasRequest
	if err := c.ShouldBindQuery(&rango); err != nil {
		response.BadRequest(c, 10001, "rango de fechas inválido")
		return 0, nil, false
	}

	return objetivo, &rango, true
}

func (h *SaludHandler) responderErrorRegistro(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUsuarioNoEncontrado) {
		response.NotFound(c, 11003, "usuario no encontrado")
		return
	}
	response.InternalError(c)
}
