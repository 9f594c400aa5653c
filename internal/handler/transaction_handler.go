package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type TransactionHandler struct {
	service TransactionServiceInterface
}

func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Create godoc
// @Summary Create a transaction
// @Description Record an income, expense or transfer
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.CreateTransactionInput true "Transaction data"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTransactionInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	tx, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, tx)
}

// List godoc
// @Summary List transactions
// @Description List the user's transactions, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by type (income, expense or transfer)"
// @Param categoryId query string false "Filter by category ID"
// @Param paymentMethod query string false "Filter by payment method"
// @Param dateFrom query string false "Filter by start date (YYYY-MM-DD)"
// @Param dateTo query string false "Filter by end date (YYYY-MM-DD)"
// @Param amountMin query number false "Minimum amount"
// @Param amountMax query number false "Maximum amount"
// @Param tags query string false "Comma-separated tags, all must match"
// @Param search query string false "Search title, description and tags"
// @Param limit query int false "Maximum number of results"
// @Success 200 {array} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseTransactionQuery(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	txs, err := h.service.List(r.Context(), q)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, txs)
}

// Totals godoc
// @Summary Get transaction totals
// @Description Sum income and expenses over the same filters as the list
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by type (income, expense or transfer)"
// @Param categoryId query string false "Filter by category ID"
// @Param paymentMethod query string false "Filter by payment method"
// @Param dateFrom query string false "Filter by start date (YYYY-MM-DD)"
// @Param dateTo query string false "Filter by end date (YYYY-MM-DD)"
// @Param amountMin query number false "Minimum amount"
// @Param amountMax query number false "Maximum amount"
// @Param tags query string false "Comma-separated tags, all must match"
// @Param search query string false "Search title, description and tags"
// @Param limit query int false "Maximum number of results"
// @Success 200 {object} model.TransactionTotals
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/totals [get]
func (h *TransactionHandler) Totals(w http.ResponseWriter, r *http.Request) {
	q, err := parseTransactionQuery(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	totals, err := h.service.Totals(r.Context(), q)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// Get godoc
// @Summary Get a transaction
// @Description Get a transaction by ID
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	tx, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// Update godoc
// @Summary Update a transaction
// @Description Change the fields that are set
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param input body service.UpdateTransactionInput true "Updated transaction data"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var input service.UpdateTransactionInput
	if err := decodeJSON(r, &input); err != nil {
		respondErr(w, r, err)
		return
	}

	tx, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// Delete godoc
// @Summary Delete a transaction
// @Description Delete a transaction by ID
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func parseTransactionQuery(r *http.Request) (service.TransactionQuery, error) {
	query := r.URL.Query()
	q := service.TransactionQuery{
		PaymentMethod: strings.TrimSpace(query.Get("paymentMethod")),
		Search:        strings.TrimSpace(query.Get("search")),
	}

	switch t := model.TransactionType(strings.ToLower(strings.TrimSpace(query.Get("type")))); t {
	case "":
	case model.TransactionTypeIncome, model.TransactionTypeExpense, model.TransactionTypeTransfer:
		q.Type = t
	default:
		return q, apperror.ValidationError("type", "type must be one of: income, expense, transfer")
	}

	if s := query.Get("categoryId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return q, apperror.ValidationError("categoryId", "invalid categoryId")
		}
		q.CategoryID = id
	}
	if s := query.Get("tags"); s != "" {
		q.Tags = splitAndTrim(s, ",")
	}

	var err error
	if q.DateFrom, err = queryDate(r, "dateFrom"); err != nil {
		return q, err
	}
	if q.DateTo, err = queryDate(r, "dateTo"); err != nil {
		return q, err
	}
	if q.AmountMin, err = queryDecimal(r, "amountMin"); err != nil {
		return q, err
	}
	if q.AmountMax, err = queryDecimal(r, "amountMax"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		return q, err
	}
	if q.Limit < 0 {
		return q, apperror.ValidationError("limit", "limit must not be negative")
	}
	return q, nil
}
