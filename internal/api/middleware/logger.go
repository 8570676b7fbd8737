package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger middleware de registro de peticiones con Zap
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latencia := time.Since(inicio)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latencia", latencia),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errores", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		if status >= 500 {
			logger.Error("error procesando la petición", fields...)
		} else if status >= 400 {
			logger.Warn("error del cliente", fields...)
		} else {
			logger.Info("petición completada", fields...)
		}
	}
}
