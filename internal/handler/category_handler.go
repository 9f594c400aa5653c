package handler

import (
	"net/http"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type CategoryHandler struct {
	categories     CategoryServiceInterface
	paymentMethods PaymentMethodServiceInterface
}

func NewCategoryHandler(categories CategoryServiceInterface, paymentMethods PaymentMethodServiceInterface) *CategoryHandler {
	return &CategoryHandler{categories: categories, paymentMethods: paymentMethods}
}

// List godoc
// @Summary List categories
// @Description List active categories, the defaults plus the user's own
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param type query string false "Category type (income or expense)"
// @Param defaults query bool false "Only the shared defaults"
// @Success 200 {array} model.Category
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	catType := model.CategoryType(r.URL.Query().Get("type"))

	var (
		cats []model.Category
		err  error
	)
	if queryBool(r, "defaults") {
		cats, err = h.categories.ListDefaults(r.Context(), catType)
	} else {
		cats, err = h.categories.List(r.Context(), catType)
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cats)
}

// Create godoc
// @Summary Create a category
// @Description Create a category owned by the user
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.CreateCategoryInput true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCategoryInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	cat, err := h.categories.Create(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, cat)
}

// Update godoc
// @Summary Update a category
// @Description Change the fields that are set
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param input body service.UpdateCategoryInput true "Updated category data"
// @Success 200 {object} model.Category
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var input service.UpdateCategoryInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	cat, err := h.categories.Update(r.Context(), id, input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cat)
}

// Delete godoc
// @Summary Delete a category
// @Description Delete a category that no transaction uses
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPaymentMethods godoc
// @Summary List payment methods
// @Description List the available payment methods
// @Tags payment-methods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PaymentMethod
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payment-methods [get]
func (h *CategoryHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.paymentMethods.List(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, methods)
}

// CreatePaymentMethod godoc
// @Summary Create a payment method
// @Description Add a payment method
// @Tags payment-methods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.CreatePaymentMethodInput true "Payment method data"
// @Success 201 {object} model.PaymentMethod
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payment-methods [post]
func (h *CategoryHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePaymentMethodInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	pm, err := h.paymentMethods.Create(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, pm)
}
