package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/apperrors"
	"paisa/internal/services"
)

// ReportHandler handles spending-report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportQuery represents the report query parameters.
type ReportQuery struct {
	Period string `form:"period" binding:"required,report_period"`
}

// GetReport generates a periodic spending report.
// @Summary     Spending report
// @Description Generate a report for the trailing week or month: totals, top categories, daily average, and remaining balance
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string true "Report period (week/month)"
// @Success     200 {object} services.Report "Report"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be week or month"))
		return
	}

	report, err := h.reportService.Generate(query.Period)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
