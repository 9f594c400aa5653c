package handler

import (
	"net/http"

	"github.com/fintrack/backend/internal/service"
)

// BudgetHandler serves monthly and annual budgets, recorded performance and
// the budget reports. Every read takes ?financialYear=; 0 or absent means the
// current financial year.
type BudgetHandler struct {
	service BudgetServiceInterface
}

func NewBudgetHandler(service BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// SetMonthly godoc
// @Summary Set a monthly budget
// @Description Create or replace the budget of a category for one month
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.SetMonthlyBudgetInput true "Monthly budget data"
// @Success 200 {object} model.MonthlyBudget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/monthly [put]
func (h *BudgetHandler) SetMonthly(w http.ResponseWriter, r *http.Request) {
	var input service.SetMonthlyBudgetInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	budget, err := h.service.SetMonthly(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budget)
}

// ListMonthly godoc
// @Summary List monthly budgets
// @Description List the monthly budgets of a financial year ordered by month
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Param month query int false "Calendar month 1-12; 0 or absent means every month"
// @Success 200 {array} model.MonthlyBudget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/monthly [get]
func (h *BudgetHandler) ListMonthly(w http.ResponseWriter, r *http.Request) {
	fy, month, err := yearAndMonth(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	budgets, err := h.service.ListMonthly(r.Context(), fy, month)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budgets)
}

// UpdateMonthly godoc
// @Summary Update a monthly budget
// @Description Change the amount or notes of a monthly budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Monthly budget ID"
// @Param input body service.UpdateMonthlyBudgetInput true "Updated budget data"
// @Success 200 {object} model.MonthlyBudget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/monthly/{id} [put]
func (h *BudgetHandler) UpdateMonthly(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var input service.UpdateMonthlyBudgetInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	budget, err := h.service.UpdateMonthly(r.Context(), id, input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budget)
}

// DeleteMonthly godoc
// @Summary Delete a monthly budget
// @Description Delete a monthly budget by ID
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Monthly budget ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/monthly/{id} [delete]
func (h *BudgetHandler) DeleteMonthly(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.service.DeleteMonthly(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetAnnual godoc
// @Summary Set an annual budget
// @Description Create or replace the yearly budget of a category
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.SetAnnualBudgetInput true "Annual budget data"
// @Success 200 {object} model.AnnualBudget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/annual [put]
func (h *BudgetHandler) SetAnnual(w http.ResponseWriter, r *http.Request) {
	var input service.SetAnnualBudgetInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	budget, err := h.service.SetAnnual(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budget)
}

// ListAnnual godoc
// @Summary List annual budgets
// @Description List the annual budgets of a financial year
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {array} model.AnnualBudget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/annual [get]
func (h *BudgetHandler) ListAnnual(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	budgets, err := h.service.ListAnnual(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budgets)
}

// DeleteAnnual godoc
// @Summary Delete an annual budget
// @Description Delete an annual budget by ID
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Annual budget ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/annual/{id} [delete]
func (h *BudgetHandler) DeleteAnnual(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.service.DeleteAnnual(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordPerformance godoc
// @Summary Record budget performance
// @Description Store the actual income and spend of a category for one month
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.RecordPerformanceInput true "Performance data"
// @Success 200 {object} model.BudgetUtilization
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/performance [put]
func (h *BudgetHandler) RecordPerformance(w http.ResponseWriter, r *http.Request) {
	var input service.RecordPerformanceInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	perf, err := h.service.RecordPerformance(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, perf)
}

// Performance godoc
// @Summary List budget performance
// @Description List recorded performance with utilization and status
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Param month query int false "Calendar month 1-12; 0 or absent means every month"
// @Success 200 {array} model.BudgetUtilization
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/performance [get]
func (h *BudgetHandler) Performance(w http.ResponseWriter, r *http.Request) {
	fy, month, err := yearAndMonth(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	perf, err := h.service.Performance(r.Context(), fy, month)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, perf)
}

// Totals godoc
// @Summary Get budget totals
// @Description Sum the planned monthly and annual amounts of a financial year
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {object} service.BudgetTotals
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/totals [get]
func (h *BudgetHandler) Totals(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	totals, err := h.service.Totals(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// Summary godoc
// @Summary Get financial year summary
// @Description Income, expenses and budget use of a financial year by month
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {object} model.FinancialYearSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/summary [get]
func (h *BudgetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// CategoryAnalysis godoc
// @Summary Analyse a category budget
// @Description Budget against spend of one category over a financial year
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {object} model.CategoryBudgetAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/analysis/{categoryId} [get]
func (h *BudgetHandler) CategoryAnalysis(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	analysis, err := h.service.CategoryAnalysis(r.Context(), fy, categoryID)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// Chart godoc
// @Summary Get budget chart data
// @Description Monthly budget against actual spend of a financial year
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param financialYear query int false "Financial year start (e.g. 2024 for 2024-25); defaults to the current one"
// @Success 200 {array} model.BudgetVsActual
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/chart [get]
func (h *BudgetHandler) Chart(w http.ResponseWriter, r *http.Request) {
	fy, err := queryInt(r, "financialYear")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	chart, err := h.service.Chart(r.Context(), fy)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, chart)
}

func yearAndMonth(r *http.Request) (fy, month int, err error) {
	if fy, err = queryInt(r, "financialYear"); err != nil {
		return 0, 0, err
	}
	if month, err = queryInt(r, "month"); err != nil {
		return 0, 0, err
	}
	return fy, month, nil
}
