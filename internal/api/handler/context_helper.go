package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// MustGetUserID extrae id_usuario del contexto de Gin.
// Si el middleware JWT no lo inyectó, escribe un 401 y devuelve false.
// El llamador debe hacer return cuando ok=false.
func MustGetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("id_usuario")
	if !exists {
		response.Unauthorized(c, 10002, "no autenticado")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "no autenticado")
		return 0, false
	}
	return id, true
}

// MustGetRol extrae el rol del contexto de Gin.
func MustGetRol(c *gin.Context) (string, bool) {
	v, exists := c.Get("rol")
	if !exists {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	return s, true
}
