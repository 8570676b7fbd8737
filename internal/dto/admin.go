package dto

// ── DTO del panel de administración ──

// EstadisticasResponse estadísticas básicas del panel
type EstadisticasResponse struct {
	TotalUsuarios int64 `json:"total_usuarios"`
}

// DifusionCorreoRequest difusión de un mensaje por correo y notificación en aplicación
type DifusionCorreoRequest struct {
	IDsUsuarios []int64 `json:"ids_usuarios" binding:"required,min=1"`
	Asunto      string  `json:"asunto"       binding:"omitempty,max=200"`
	Mensaje     string  `json:"mensaje"      binding:"required,max=1000"`
}

// DifusionCorreoResponse resultado de la difusión
type DifusionCorreoResponse struct {
	Enviados int      `json:"enviados"`
	Fallidos []string `json:"fallidos,omitempty"` // emails cuyo envío falló
}
