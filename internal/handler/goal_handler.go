package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type GoalHandler struct {
	service GoalServiceInterface
}

func NewGoalHandler(service GoalServiceInterface) *GoalHandler {
	return &GoalHandler{service: service}
}

// Create godoc
// @Summary Create a goal
// @Description Create a financial goal in the active state
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.CreateGoalInput true "Goal data"
// @Success 201 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateGoalInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	goal, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// List godoc
// @Summary List goals
// @Description List goals with progress
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Goal status (active, paused, completed or cancelled)"
// @Success 200 {array} model.GoalWithProgress
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.List(r.Context(), model.GoalStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

// Get godoc
// @Summary Get a goal
// @Description Get a goal with progress by ID
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	goal, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

// Update godoc
// @Summary Update a goal
// @Description Change the fields that are set
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param input body service.UpdateGoalInput true "Updated goal data"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var input service.UpdateGoalInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	goal, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

// Delete godoc
// @Summary Delete a goal
// @Description Delete a goal by ID
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// AddProgress godoc
// @Summary Add goal progress
// @Description Add an amount to the saved total of a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param input body amountRequest true "Amount saved"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id}/progress [post]
func (h *GoalHandler) AddProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.Amount == nil {
		respondErr(w, r, apperror.ValidationError("amount", "Amount is required"))
		return
	}

	goal, err := h.service.AddProgress(r.Context(), id, *req.Amount)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

// Pause godoc
// @Summary Pause a goal
// @Description Move an active goal to paused
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id}/pause [post]
func (h *GoalHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Pause)
}

// Activate godoc
// @Summary Activate a goal
// @Description Move a paused goal back to active
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id}/activate [post]
func (h *GoalHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Activate)
}

// Complete godoc
// @Summary Complete a goal
// @Description Mark an active goal completed and its target reached
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id}/complete [post]
func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete)
}

// Cancel godoc
// @Summary Cancel a goal
// @Description Cancel a goal in any state
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.GoalWithProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{id}/cancel [post]
func (h *GoalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel)
}

func (h *GoalHandler) transition(w http.ResponseWriter, r *http.Request, apply func(context.Context, uuid.UUID) (*model.GoalWithProgress, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	goal, err := apply(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

type goalSummaryResponse struct {
	model.GoalSummary
	Groups   *service.GoalGroups        `json:"groups"`
	Progress *model.GoalProgressSummary `json:"progress"`
}

// Summary godoc
// @Summary Get goal summary
// @Description Totals, status and priority groupings and the stored progress summary
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} goalSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/summary [get]
func (h *GoalHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	groups, err := h.service.Groups(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	progress, err := h.service.ProgressSummary(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goalSummaryResponse{GoalSummary: summary, Groups: groups, Progress: progress})
}
