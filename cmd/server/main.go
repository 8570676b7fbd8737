package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/EmmanuelQuintero/Control-Plus-7/config"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/api/handler"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/api/router"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/service"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/database"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/jwt"
	applogger "github.com/EmmanuelQuintero/Control-Plus-7/pkg/logger"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/mailer"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/redis"
)

func main() {
	// 1. Cargar configuración
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error cargando configuración: %v\n", err)
		os.Exit(1)
	}

	// 2. Inicializar logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error inicializando logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("arrancando la aplicación...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Conectar a la base de datos
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("error conectando a la base de datos", zap.Error(err))
	}
	logger.Info("base de datos conectada")

	// 3.1 Ejecutar migraciones
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("error obteniendo el sql.DB subyacente", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("error ejecutando migraciones", zap.Error(err))
	}

	// 4. Conectar a Redis (opcional: si falla se degrada sin lista negra
	//    de tokens ni límite de frecuencia)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis no disponible, se continúa sin lista negra de tokens", zap.Error(err))
		rdb = nil
	}

	// 5. Administración de JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Inyección de dependencias: Repository → Service → Handler
	repo := repository.NewRepository(db)
	m := mailer.NewSMTPMailer(&cfg.Mail)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, m, logger)
	h := handler.NewHandler(svc)

	// 7. Rutas
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. Barrido diario de notificaciones (evalúa "ayer" para todos)
	barridoCtx, cancelarBarrido := context.WithCancel(context.Background())
	go programarBarridoDiario(barridoCtx, svc.Notificacion, cfg.Notificaciones.Timezone, logger)

	// 9. Servidor HTTP con apagado ordenado
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("error del servidor HTTP", zap.Error(err))
		}
	}()

	// 10. Esperar señal de apagado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("señal de apagado recibida, iniciando cierre ordenado...", zap.String("signal", sig.String()))

	cancelarBarrido()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error cerrando el servidor", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor detenido")
}

// programarBarridoDiario ejecuta el barrido de notificaciones una vez al día
// poco después de la medianoche de la zona configurada.
func programarBarridoDiario(ctx context.Context, notifSvc service.NotificacionService, timezone string, logger *zap.Logger) {
	zona, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("zona horaria inválida para el barrido, se usa UTC",
			zap.String("timezone", timezone), zap.Error(err))
		zona = time.UTC
	}

	for {
		ahora := time.Now().In(zona)
		siguiente := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 5, 0, 0, zona).AddDate(0, 0, 1)

		select {
		case <-ctx.Done():
			return
		case <-time.After(siguiente.Sub(ahora)):
		}

		logger.Info("ejecutando barrido diario de notificaciones")
		if err := notifSvc.EjecutarBarrido(ctx); err != nil {
			logger.Error("error en el barrido diario de notificaciones", zap.Error(err))
		}
	}
}
