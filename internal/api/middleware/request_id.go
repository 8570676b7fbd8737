package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen limita el largo del Request-ID externo para evitar
// inyección en los logs
const requestIDMaxLen = 64

// RequestID middleware de trazabilidad de peticiones.
// Lee X-Request-ID del header o genera un UUID nuevo, lo inyecta en el
// contexto y lo devuelve en la respuesta.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
