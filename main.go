package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotelcore/config"
	"hotelcore/routes"
	"hotelcore/services/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := logger.NewZapLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		zl.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}

	app, err := config.InitApp(cfg, zl)
	if err != nil {
		zl.Error("Failed to initialize app: %v", err)
		return
	}
	defer app.Close()

	if err := app.InitCronJobs(); err != nil {
		zl.Error("%v", err)
		return
	}
	app.InitWebSocket()
	routes.SetupRoutes(app.Router, app.Facade, cfg.JWTSecret, zl)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("Failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server shutdown: %v", err)
	}
}
