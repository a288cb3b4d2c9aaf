package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paisa/internal/apperrors"
	"paisa/internal/services"
)

// InsightHandler handles spending-insight requests.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetInsights returns every derived insight view.
// @Summary     All insights
// @Description Get anomalies, suggestions, trend, and month comparison in one call
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Insights "Insights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	insights, err := h.insightService.All()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

// GetAnomalies returns categories spending well above their average.
// @Summary     Spending anomalies
// @Description Flag categories whose weekly spending exceeds their monthly average by the threshold percentage
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       threshold query number false "Change percentage threshold (default 20)"
// @Success     200 {object} map[string][]services.Anomaly "Anomalies"
// @Failure     400 {object} ErrorResponse "Invalid threshold"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/anomalies [get]
func (h *InsightHandler) GetAnomalies(c *gin.Context) {
	threshold := 20.0
	if v := c.Query("threshold"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid threshold"))
			return
		}
		threshold = parsed
	}

	anomalies, err := h.insightService.Anomalies(threshold)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"anomalies": anomalies})
}

// GetSuggestions returns cost-saving hints.
// @Summary     Savings suggestions
// @Description Get cost-saving hints derived from the last month of spending
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.Suggestion "Suggestions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/suggestions [get]
func (h *InsightHandler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.insightService.Suggestions()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetTrend returns the week-over-week spending direction.
// @Summary     Spending trend
// @Description Get weekly totals and the overall direction over a trailing window
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Trailing window in days (default 30)"
// @Success     200 {object} services.Trend "Trend"
// @Failure     400 {object} ErrorResponse "Invalid days"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/trend [get]
func (h *InsightHandler) GetTrend(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid days"))
			return
		}
		days = parsed
	}

	trend, err := h.insightService.Trend(days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// GetComparison compares this month's spending with last month's.
// @Summary     Month comparison
// @Description Compare month-to-date spending with the previous month, optionally for one category
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Restrict to one category"
// @Success     200 {object} services.MonthComparison "Comparison"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/comparison [get]
func (h *InsightHandler) GetComparison(c *gin.Context) {
	var category *string
	if v := c.Query("category"); v != "" {
		category = &v
	}

	comparison, err := h.insightService.Comparison(category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}
