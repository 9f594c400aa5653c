package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type InvestmentHandler struct {
	service InvestmentServiceInterface
}

func NewInvestmentHandler(service InvestmentServiceInterface) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// Create godoc
// @Summary Create an investment
// @Description Record an investment
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.CreateInvestmentInput true "Investment data"
// @Success 201 {object} model.Investment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments [post]
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateInvestmentInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	inv, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, inv)
}

// List godoc
// @Summary List investments
// @Description List investments with their portfolio share
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active investments"
// @Success 200 {array} model.InvestmentWithPortfolio
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments [get]
func (h *InvestmentHandler) List(w http.ResponseWriter, r *http.Request) {
	investments, err := h.service.List(r.Context(), queryBool(r, "active"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, investments)
}

// Get godoc
// @Summary Get an investment
// @Description Get an investment by ID
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Investment ID"
// @Success 200 {object} model.Investment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments/{id} [get]
func (h *InvestmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, inv)
}

// Update godoc
// @Summary Update an investment
// @Description Change the fields that are set
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Investment ID"
// @Param input body service.UpdateInvestmentInput true "Updated investment data"
// @Success 200 {object} model.Investment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments/{id} [put]
func (h *InvestmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var input service.UpdateInvestmentInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	inv, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, inv)
}

type valueRequest struct {
	CurrentValue *decimal.Decimal `json:"currentValue"`
}

// UpdateValue godoc
// @Summary Update an investment value
// @Description Set the current market value of an investment
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Investment ID"
// @Param input body valueRequest true "Current value"
// @Success 200 {object} model.Investment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments/{id}/value [put]
func (h *InvestmentHandler) UpdateValue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var req valueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.CurrentValue == nil {
		respondErr(w, r, apperror.ValidationError("currentValue", "Current value is required"))
		return
	}

	inv, err := h.service.UpdateValue(r.Context(), id, *req.CurrentValue)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, inv)
}

// Delete godoc
// @Summary Delete an investment
// @Description Delete an investment by ID
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Investment ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments/{id} [delete]
func (h *InvestmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type investmentPerformanceResponse struct {
	model.InvestmentPerformance
	ByType  map[model.InvestmentType][]model.Investment `json:"byType"`
	Summary *model.InvestmentSummary                    `json:"summary"`
	Returns []model.InvestmentReturn                    `json:"returns"`
}

// Performance godoc
// @Summary Get investment performance
// @Description Portfolio performance, holdings by type, summary and returns
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} investmentPerformanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /investments/performance [get]
func (h *InvestmentHandler) Performance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.service.Performance(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	byType, err := h.service.ByType(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	returns, err := h.service.Returns(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, investmentPerformanceResponse{
		InvestmentPerformance: perf,
		ByType:                byType,
		Summary:               summary,
		Returns:               returns,
	})
}
