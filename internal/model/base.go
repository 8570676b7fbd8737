package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ── Tipo Fecha (DATE como cadena 'YYYY-MM-DD') ──

// Fecha mapea columnas DATE de PostgreSQL como cadena 'YYYY-MM-DD'.
// Las fechas de registro se comparan y transportan como cadenas de calendario
// para evitar corrimientos de zona horaria al cruzar capas.
type Fecha string

const formatoFecha = "2006-01-02"

// Scan interpreta el valor DATE devuelto por el driver.
func (f *Fecha) Scan(src interface{}) error {
	if src == nil {
		*f = ""
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		*f = Fecha(v.Format(formatoFecha))
	case []byte:
		*f = Fecha(v)
	case string:
		*f = Fecha(v)
	default:
		return fmt.Errorf("Fecha.Scan: tipo no soportado %T", src)
	}
	return nil
}

// Value serializa la fecha como cadena para el driver.
func (f Fecha) Value() (driver.Value, error) {
	if f == "" {
		return nil, nil
	}
	return string(f), nil
}

// Valida verifica que la cadena tenga formato 'YYYY-MM-DD'.
func (f Fecha) Valida() bool {
	_, err := time.Parse(formatoFecha, string(f))
	return err == nil
}

// ── Roles de usuario ──

const (
	RolUsuario = "Usuario"
	RolAdmin   = "Admin"
)
