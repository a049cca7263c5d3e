package router

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cafe_backoffice/internal/analytics"
	"cafe_backoffice/internal/handlers"
	"cafe_backoffice/internal/middleware"
	"cafe_backoffice/internal/repositories"
	"cafe_backoffice/internal/services"
	"cafe_backoffice/pkg/utils"
)

// Services are what the HTTP API needs to serve requests.
type Services struct {
	Auth      services.AuthService
	Analytics services.AnalyticsService
	JWTSecret []byte
}

// Setup builds repositories and services on top of db and registers every route.
func Setup(r *gin.Engine, db *sql.DB, engine *analytics.Engine, cache services.ReportCache, jwtSecret []byte) {
	authRepo := repositories.NewAuthRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)
	staffRepo := repositories.NewStaffRepository(db)

	RegisterRoutes(r, Services{
		Auth:      services.NewAuthService(authRepo, jwtSecret, utils.GetenvSeconds("JWT_TTL_SECONDS", utils.AccessTokenTTL)),
		Analytics: services.NewAnalyticsService(orderRepo, receiptRepo, expenseRepo, staffRepo, engine, cache),
		JWTSecret: jwtSecret,
	})
}

// NewEngine returns a gin engine with recovery, request ids, request logging and CORS.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger())
	r.Use(cors.New(corsConfig()))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

// corsConfig reads CORS_ALLOWED_ORIGINS, a comma separated list.
func corsConfig() cors.Config {
	origins := []string{"http://localhost:3000", "http://localhost:3001"}
	if env := utils.Getenv("CORS_ALLOWED_ORIGINS", ""); env != "" {
		origins = strings.Split(env, ",")
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	config.AllowCredentials = true
	return config
}

// RegisterRoutes mounts the /api/v1 routes.
func RegisterRoutes(r *gin.Engine, svcs Services) {
	authHandler := handlers.NewAuthHandler(svcs.Auth)
	analyticsHandler := handlers.NewAnalyticsHandler(svcs.Analytics)
	reportHandler := handlers.NewReportHandler(svcs.Analytics)

	apiV1 := r.Group("/api/v1")
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(svcs.JWTSecret))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupAnalyticsRoutes(authenticated, analyticsHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
