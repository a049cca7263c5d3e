package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/internal/services"
)

// ReportHandler serves the rendered report and the workbook export.
type ReportHandler struct {
	analyticsService services.AnalyticsService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(as services.AnalyticsService) *ReportHandler {
	return &ReportHandler{analyticsService: as}
}

// GetReport renders the Arabic markdown report. ?mode= picks the sections.
func (h *ReportHandler) GetReport(c *gin.Context) {
	params, period, ok := bindReportParams(c, h.analyticsService)
	if !ok {
		return
	}
	report, err := h.analyticsService.Report(c.Request.Context(), period, params.Mode)
	if err != nil {
		respondServiceError(c, err, "GetReport: Error from analyticsService.Report")
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report))
}

// ExportReport streams the analysis as an XLSX workbook.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	_, period, ok := bindReportParams(c, h.analyticsService)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.analyticsService.ExportXLSX(c.Request.Context(), period, &buf); err != nil {
		respondServiceError(c, err, "ExportReport: Error from analyticsService.ExportXLSX")
		return
	}
	filename := fmt.Sprintf("analytics_%s_%s.xlsx", models.DayKey(period.From), models.DayKey(period.To))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, services.XLSXContentType, buf.Bytes())
}
