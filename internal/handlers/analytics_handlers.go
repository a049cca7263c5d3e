package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/internal/repositories"
	"cafe_backoffice/internal/services"
	"cafe_backoffice/pkg/utils"
)

// AnalyticsHandler serves the JSON analytics views.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// bindReportParams reads the query string and resolves the period, responding
// 400 when either is unusable.
func bindReportParams(c *gin.Context, svc services.AnalyticsService) (models.ReportRequestParams, models.Period, bool) {
	var params models.ReportRequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return params, models.Period{}, false
	}
	period, err := services.ParsePeriod(params.StartDate, params.EndDate, svc.Now())
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidPeriod, "Invalid date range.", err.Error()))
		return params, models.Period{}, false
	}
	return params, period, true
}

// respondServiceError maps analytics service errors to API errors.
func respondServiceError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrInvalidPeriod):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidPeriod, "Invalid date range.", err.Error()))
	case errors.Is(err, services.ErrInvalidReportMode):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidReportMode, "Unknown report mode.", err.Error()))
	case errors.Is(err, services.ErrUnknownDimension):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unknown aggregation dimension.", err.Error()))
	case errors.Is(err, repositories.ErrDatabaseError):
		utils.LogError(err, op)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Records are temporarily unavailable.", "Database error"))
	default:
		utils.LogError(err, op)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute analytics.", "Internal error"))
	}
}

// GetAnalytics returns the full analysis of a period.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	_, period, ok := bindReportParams(c, h.analyticsService)
	if !ok {
		return
	}
	result, err := h.analyticsService.Analyze(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err, "GetAnalytics: Error from analyticsService.Analyze")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetKPIs returns only the KPI set.
func (h *AnalyticsHandler) GetKPIs(c *gin.Context) {
	_, period, ok := bindReportParams(c, h.analyticsService)
	if !ok {
		return
	}
	result, err := h.analyticsService.Analyze(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err, "GetKPIs: Error from analyticsService.Analyze")
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": result.Period, "kpis": result.KPIs})
}

// GetAlerts returns the alerts of a period.
func (h *AnalyticsHandler) GetAlerts(c *gin.Context) {
	_, period, ok := bindReportParams(c, h.analyticsService)
	if !ok {
		return
	}
	result, err := h.analyticsService.Analyze(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err, "GetAlerts: Error from analyticsService.Analyze")
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": result.Period, "alerts": result.Alerts})
}

// GetAggregation returns one summary; exclude_payroll applies to category views.
func (h *AnalyticsHandler) GetAggregation(c *gin.Context) {
	params, period, ok := bindReportParams(c, h.analyticsService)
	if !ok {
		return
	}
	dimension := c.Param("dimension")
	items, err := h.analyticsService.Aggregation(c.Request.Context(), period, dimension, params.ExcludePayroll)
	if err != nil {
		respondServiceError(c, err, "GetAggregation: Error from analyticsService.Aggregation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period, "dimension": dimension, "items": items})
}
