package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/jwt"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/redis"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// JWTAuth middleware de autenticación.
// Extrae y valida el access token del header Authorization: Bearer <token>.
// Si rdb es nil se omite la consulta a la lista negra.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "falta el header de autenticación")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "formato del header de autenticación inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token inválido o expirado")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "tipo de token inválido")
			c.Abort()
			return
		}

		if rdb != nil {
			revocado, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revocado {
				response.Unauthorized(c, 10002, "sesión cerrada")
				c.Abort()
				return
			}
		}

		// Inyectar la identidad en el contexto
		c.Set("id_usuario", claims.IDUsuario)
		c.Set("rol", claims.Rol)
		c.Set("jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}

// RoleAuth middleware de autorización por rol.
// Verifica que el usuario autenticado tenga alguno de los roles permitidos.
func RoleAuth(rolesPermitidos ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, exists := c.Get("rol")
		if !exists {
			response.Unauthorized(c, 10002, "no autenticado")
			c.Abort()
			return
		}

		rolUsuario := rol.(string)
		for _, r := range rolesPermitidos {
			if rolUsuario == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "sin permiso para acceder a este recurso")
		c.Abort()
	}
}
