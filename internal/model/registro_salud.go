package model

// ── Registros diarios de salud ──

// ActividadFisica registro de actividad física — corresponde a actividad_fisica
// A lo sumo un registro por (usuario, fecha); el registro del día se sobreescribe.
type ActividadFisica struct {
	IDActividad     int64  `gorm:"primaryKey;autoIncrement"                                    json:"id_actividad"`
	IDUsuario       int64  `gorm:"not null;uniqueIndex:uniq_actividad_usuario_fecha"           json:"id_usuario"`
	Fecha           Fecha  `gorm:"type:date;not null;uniqueIndex:uniq_actividad_usuario_fecha" json:"fecha"`
	Pasos           *int   `gorm:""                                                            json:"pasos,omitempty"`
	DuracionMinutos *int   `gorm:""                                                            json:"duracion_minutos,omitempty"`
}

// TableName nombre de la tabla
func (ActividadFisica) TableName() string { return "actividad_fisica" }

// Sueno registro de sueño — corresponde a sueno
// A lo sumo un registro por (usuario, fecha).
type Sueno struct {
	IDSueno       int64    `gorm:"primaryKey;autoIncrement"                                json:"id_sueno"`
	IDUsuario     int64    `gorm:"not null;uniqueIndex:uniq_sueno_usuario_fecha"           json:"id_usuario"`
	Fecha         Fecha    `gorm:"type:date;not null;uniqueIndex:uniq_sueno_usuario_fecha" json:"fecha"`
	HorasDormidas *float64 `gorm:"type:numeric(4,2)"                                       json:"horas_dormidas,omitempty"`
}

// TableName nombre de la tabla
func (Sueno) TableName() string { return "sueno" }

// Alimentacion registro de comida — corresponde a alimentacion
// Cero o más registros por (usuario, fecha).
type Alimentacion struct {
	IDAlimento    int64    `gorm:"primaryKey;autoIncrement" json:"id_alimento"`
	IDUsuario     int64    `gorm:"not null;index"           json:"id_usuario"`
	Fecha         Fecha    `gorm:"type:date;not null"       json:"fecha"`
	Comida        string   `gorm:"type:varchar(10)"         json:"comida"` // Desayuno | Almuerzo | Cena | Snack
	Descripcion   *string  `gorm:"type:varchar(1000)"       json:"descripcion,omitempty"`
	Calorias      *float64 `gorm:"type:numeric(6,2)"        json:"calorias,omitempty"`
	Proteinas     *float64 `gorm:"type:numeric(6,2)"        json:"proteinas,omitempty"`
	Grasas        *float64 `gorm:"type:numeric(6,2)"        json:"grasas,omitempty"`
	Carbohidratos *float64 `gorm:"type:numeric(6,2)"        json:"carbohidratos,omitempty"`
}

// TableName nombre de la tabla
func (Alimentacion) TableName() string { return "alimentacion" }
