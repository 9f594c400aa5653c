package handler

import "net/http"

type AnalyticsHandler struct {
	service AnalyticsServiceInterface
}

func NewAnalyticsHandler(service AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard godoc
// @Summary Get dashboard analytics
// @Description Income, expenses, savings rate, top categories and monthly trend of a financial year
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {object} model.DashboardAnalytics
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	d, err := h.service.Dashboard(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, d)
}

// Trends godoc
// @Summary Get spending trends
// @Description Monthly income and expenses for the last months
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param months query int false "Number of months, 1-60 (default 12)"
// @Success 200 {array} model.MonthlyTrend
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/trends [get]
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	trends, err := h.service.SpendingTrends(r.Context(), months)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, trends)
}

// Categories godoc
// @Summary Get category breakdown
// @Description Spending per category of a financial year
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {array} model.CategorySpending
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/categories [get]
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	breakdown, err := h.service.CategoryBreakdown(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// SavingsRate godoc
// @Summary Get savings rate
// @Description Monthly savings rate of a financial year
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {object} model.SavingsRateAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/savings-rate [get]
func (h *AnalyticsHandler) SavingsRate(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	rate, err := h.service.SavingsRate(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rate)
}
