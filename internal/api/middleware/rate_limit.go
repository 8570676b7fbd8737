package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/redis"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/response"
)

// RateLimit middleware de límite de frecuencia con ventana deslizante en Redis.
// limite: máximo de peticiones por ventana.
// ventana: duración de la ventana deslizante.
// Con rdb nil, o si Redis falla, la petición pasa sin limitar.
func RateLimit(rdb *redis.Client, limite int, ventana time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		permitido, err := rdb.CheckRateLimit(c.Request.Context(), key, limite, ventana)
		if err != nil {
			c.Next()
			return
		}

		if !permitido {
			response.Error(c, http.StatusTooManyRequests, 10004, "demasiadas peticiones, inténtalo más tarde")
			c.Abort()
			return
		}

		c.Next()
	}
}
