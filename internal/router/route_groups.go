package router

import (
	"github.com/gin-gonic/gin"

	"cafe_backoffice/internal/handlers"
	"cafe_backoffice/internal/middleware"
	"cafe_backoffice/internal/models"
)

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes sets up the auth routes behind AuthMiddleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/register", middleware.RoleAuthMiddleware(models.RoleAdmin), authHandler.RegisterUser)
}

// SetupAnalyticsRoutes sets up the analytics routes.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	analyticsRoutes := authenticatedGroup.Group("/analytics")
	analyticsRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
	{
		analyticsRoutes.GET("", analyticsHandler.GetAnalytics)
		analyticsRoutes.GET("/kpis", analyticsHandler.GetKPIs)
		analyticsRoutes.GET("/alerts", analyticsHandler.GetAlerts)
		analyticsRoutes.GET("/aggregations/:dimension", analyticsHandler.GetAggregation)
	}
}

// SetupReportRoutes sets up the report routes. Accountants may export but not read the report.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager), reportHandler.GetReport)
		reportRoutes.GET("/export", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager, models.RoleAccountant), reportHandler.ExportReport)
	}
}
