package handler

import (
	"net/http"

	"github.com/fintrack/backend/internal/service"
)

// SavingsHandler serves savings recommendations and the allocation preview.
type SavingsHandler struct {
	service SavingsServiceInterface
}

func NewSavingsHandler(service SavingsServiceInterface) *SavingsHandler {
	return &SavingsHandler{service: service}
}

// Allocation godoc
// @Summary Preview an allocation
// @Description Split a monthly surplus by risk profile without storing anything
// @Tags savings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.GenerateRecommendationsInput true "Income, expenses and risk profile"
// @Success 200 {object} allocation.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /savings/allocation [post]
func (h *SavingsHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	var input service.GenerateRecommendationsInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	plan, err := h.service.Preview(input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// Generate godoc
// @Summary Generate recommendations
// @Description Store one recommendation per allocation bucket
// @Tags savings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.GenerateRecommendationsInput true "Income, expenses and risk profile"
// @Success 201 {object} service.GeneratedRecommendations
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /savings/generate [post]
func (h *SavingsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input service.GenerateRecommendationsInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	out, err := h.service.Generate(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, out)
}

// List godoc
// @Summary List recommendations
// @Description List live recommendations. With pending=true the pending summary (service.PendingRecommendations) is returned instead
// @Tags savings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of recommendations"
// @Param pending query bool false "Return the pending summary"
// @Success 200 {array} model.SavingsRecommendation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /savings/recommendations [get]
func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if queryBool(r, "pending") {
		pending, err := h.service.Pending(r.Context())
		if err != nil {
			respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, pending)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if limit < 0 {
		limit = 0
	}

	recs, err := h.service.List(r.Context(), limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, recs)
}

// Accept godoc
// @Summary Accept a recommendation
// @Description Mark a recommendation accepted
// @Tags savings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 200 {object} model.SavingsRecommendation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /savings/recommendations/{id}/accept [post]
func (h *SavingsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	rec, err := h.service.Accept(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// Complete godoc
// @Summary Complete a recommendation
// @Description Mark an accepted recommendation completed
// @Tags savings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 200 {object} model.SavingsRecommendation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /savings/recommendations/{id}/complete [post]
func (h *SavingsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	rec, err := h.service.Complete(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

// Feedback godoc
// @Summary Leave recommendation feedback
// @Description Store free-text feedback on a recommendation
// @Tags savings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Param input body feedbackRequest true "Feedback"
// @Success 200 {object} model.SavingsRecommendation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /savings/recommendations/{id}/feedback [post]
func (h *SavingsHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	rec, err := h.service.Feedback(r.Context(), id, req.Feedback)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// Delete godoc
// @Summary Delete a recommendation
// @Description Delete a recommendation by ID
// @Tags savings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /savings/recommendations/{id} [delete]
func (h *SavingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
