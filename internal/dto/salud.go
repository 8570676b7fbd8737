package dto

// ── DTO de registros diarios de salud ──

// RegistrarActividadRequest registra (o sobreescribe) la actividad del día
type RegistrarActividadRequest struct {
	Fecha           string `json:"fecha"            binding:"required,datetime=2006-01-02"`
	Pasos           *int   `json:"pasos"            binding:"required,min=0"`
	DuracionMinutos *int   `json:"duracion_minutos" binding:"required,min=0"`
}

// RegistrarSuenoRequest registra (o sobreescribe) las horas de sueño del día
type RegistrarSuenoRequest struct {
	Fecha         string   `json:"fecha"          binding:"required,datetime=2006-01-02"`
	HorasDormidas *float64 `json:"horas_dormidas" binding:"required,min=0,max=24"`
}

// RegistrarComidaRequest registra una comida del día
type RegistrarComidaRequest struct {
	Fecha         string   `json:"fecha"         binding:"required,datetime=2006-01-02"`
	Comida        string   `json:"comida"        binding:"required,oneof=Desayuno Almuerzo Cena Snack"`
	Descripcion   *string  `json:"descripcion"   binding:"omitempty,max=1000"`
	Calorias      *float64 `json:"calorias"      binding:"omitempty,min=0"`
	Proteinas     *float64 `json:"proteinas"     binding:"omitempty,min=0"`
	Grasas        *float64 `json:"grasas"        binding:"omitempty,min=0"`
	Carbohidratos *float64 `json:"carbohidratos" binding:"omitempty,min=0"`
}

// RangoFechasRequest filtro opcional de rango para los históricos
type RangoFechasRequest struct {
	Desde string `form:"desde" binding:"omitempty,datetime=2006-01-02"`
	Hasta string `form:"hasta" binding:"omitempty,datetime=2006-01-02"`
}
