package dto

// ── DTO del módulo de notificaciones ──

// ListarNotificacionesRequest filtro del listado de notificaciones
type ListarNotificacionesRequest struct {
	// Timestamp ISO-8601; solo se devuelven notificaciones posteriores
	Desde string `form:"desde" binding:"omitempty"`
}

// MarcarLeidasRequest marca como leídas las notificaciones indicadas
type MarcarLeidasRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// MarcarLeidasResponse cantidad de filas afectadas
type MarcarLeidasResponse struct {
	Cantidad int64 `json:"cantidad"`
}

// NotificacionResponse representación de una notificación para el cliente
type NotificacionResponse struct {
	ID            int64  `json:"id_notificacion"`
	IDUsuario     int64  `json:"id_usuario"`
	Tipo          string `json:"tipo"`
	Titulo        string `json:"titulo"`
	Mensaje       string `json:"mensaje"`
	FechaCreacion string `json:"fecha_creacion"` // ISO-8601
	Leida         bool   `json:"leida"`
}
