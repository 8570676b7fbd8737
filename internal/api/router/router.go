package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EmmanuelQuintero/Control-Plus-7/config"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/api/handler"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/api/middleware"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/jwt"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/redis"
)

// Setup inicializa y devuelve el motor de rutas de Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middleware global ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Chequeo de salud ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Autenticación (sin token)
		auth := v1.Group("/auth")
		{
			auth.POST("/registro", h.Auth.Registro)
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateLimitVentana),
				h.Auth.Login)
		}

		// Rutas autenticadas
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// Perfil (admin o el propio usuario; se resuelve en el Service)
			authorized.PUT("/usuarios/:id_usuario", h.Usuario.Actualizar)

			// Registros de salud
			salud := authorized.Group("/salud")
			{
				salud.POST("/actividad", h.Salud.RegistrarActividad)
				salud.POST("/sueno", h.Salud.RegistrarSueno)
				salud.POST("/comidas", h.Salud.RegistrarComida)

				// Históricos (dueño o admin; se resuelve en el Handler)
				salud.GET("/actividad/:id_usuario", h.Salud.ListarActividad)
				salud.GET("/sueno/:id_usuario", h.Salud.ListarSueno)
				salud.GET("/comidas/:id_usuario", h.Salud.ListarAlimentacion)
			}

			// Notificaciones
			notificaciones := authorized.Group("/notificaciones")
			{
				notificaciones.GET("", h.Notificacion.Listar)
				notificaciones.PUT("/leidas", h.Notificacion.MarcarLeidas)
			}

			// Panel de administración
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RolAdmin))
			{
				admin.GET("/estadisticas", h.Admin.Estadisticas)
				admin.GET("/usuarios", h.Admin.ListarUsuarios)
				admin.GET("/usuarios/exportar", h.Admin.ExportarUsuarios)
				admin.POST("/difusion", h.Admin.EnviarDifusion)
				admin.POST("/notificaciones/barrido", h.Admin.EjecutarBarrido)
			}
		}
	}

	return r
}
