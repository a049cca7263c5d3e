package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cafe_backoffice/internal/config"
	"cafe_backoffice/internal/database"
	"cafe_backoffice/internal/router"
	"cafe_backoffice/internal/services"
	"cafe_backoffice/pkg/utils"
)

func main() {
	utils.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyticsCfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		utils.LogError(err, "Failed to load analytics config")
		os.Exit(1)
	}
	engine, err := analyticsCfg.NewEngine(nil)
	if err != nil {
		utils.LogError(err, "Failed to build analytics engine")
		os.Exit(1)
	}

	db, err := database.Open(ctx, database.ConfigFromEnv())
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	defer db.Close()

	cache, closeCache := services.ReportCacheFromEnv(ctx)
	defer closeCache()

	if utils.GetenvBool("GIN_RELEASE", false) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.NewEngine()
	router.Setup(r, db, engine, cache, utils.JWTSecret())

	port := utils.Getenv("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server shutdown failed")
	}
	utils.LogInfo("Server stopped")
}
