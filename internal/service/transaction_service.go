package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/aggregate"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

// TransactionService records and lists the current user's transactions.
// It is safe for concurrent use.
type TransactionService struct {
	gw  gateway.Gateway
	now Clock
}

// NewTransactionService creates a TransactionService on top of gw.
func NewTransactionService(gw gateway.Gateway) *TransactionService {
	return &TransactionService{gw: gw, now: time.Now}
}

// CreateTransactionInput is validated in field order, so the first three
// fields produce the first three messages.
type CreateTransactionInput struct {
	Amount            decimal.Decimal       `json:"amount" validate:"gt=0"`
	CategoryID        uuid.UUID             `json:"categoryId" validate:"required" label:"Category"`
	PaymentMethod     string                `json:"paymentMethod" validate:"required"`
	Type              model.TransactionType `json:"type" validate:"omitempty,oneof=income expense transfer"`
	Title             string                `json:"title" validate:"max=255"`
	Description       string                `json:"description"`
	Date              datetime.Date         `json:"date"`
	BankName          string                `json:"bankName" validate:"max=100"`
	ReferenceNumber   string                `json:"referenceNumber" validate:"max=100"`
	Tags              []string              `json:"tags"`
	IsRecurring       bool                  `json:"isRecurring"`
	RecurringInterval string                `json:"recurringInterval" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	RecurringEndDate  *datetime.Date        `json:"recurringEndDate"`
}

// UpdateTransactionInput patches only the fields that are set.
type UpdateTransactionInput struct {
	Amount            *decimal.Decimal       `json:"amount" validate:"omitempty,gt=0"`
	CategoryID        *uuid.UUID             `json:"categoryId" label:"Category"`
	PaymentMethod     *string                `json:"paymentMethod" validate:"omitempty,min=1"`
	Type              *model.TransactionType `json:"type" validate:"omitempty,oneof=income expense transfer"`
	Title             *string                `json:"title" validate:"omitempty,min=1,max=255"`
	Description       *string                `json:"description"`
	Date              *datetime.Date         `json:"date"`
	BankName          *string                `json:"bankName" validate:"omitempty,max=100"`
	ReferenceNumber   *string                `json:"referenceNumber" validate:"omitempty,max=100"`
	Tags              []string               `json:"tags"`
	IsRecurring       *bool                  `json:"isRecurring"`
	RecurringInterval *string                `json:"recurringInterval" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	RecurringEndDate  *datetime.Date         `json:"recurringEndDate"`
}

// TransactionQuery narrows a transaction listing. Zero values match everything.
type TransactionQuery struct {
	Type          model.TransactionType
	CategoryID    uuid.UUID
	PaymentMethod string
	DateFrom      datetime.Date
	DateTo        datetime.Date
	AmountMin     decimal.Decimal
	AmountMax     decimal.Decimal
	Tags          []string
	Search        string
	Limit         int
}

func (q TransactionQuery) filter() gateway.Filter {
	f := gateway.Filter{Limit: q.Limit}
	if q.Type != "" {
		f = f.And(gateway.Eq("type", q.Type))
	}
	if q.CategoryID != uuid.Nil {
		f = f.And(gateway.Eq("category_id", q.CategoryID))
	}
	if q.PaymentMethod != "" {
		f = f.And(gateway.Eq("payment_method", q.PaymentMethod))
	}
	if !q.DateFrom.IsZero() {
		f = f.And(gateway.Gte("date", q.DateFrom))
	}
	if !q.DateTo.IsZero() {
		f = f.And(gateway.Lte("date", q.DateTo))
	}
	if q.AmountMin.IsPositive() {
		f = f.And(gateway.Gte("amount", q.AmountMin))
	}
	if q.AmountMax.IsPositive() {
		f = f.And(gateway.Lte("amount", q.AmountMax))
	}
	if len(q.Tags) > 0 {
		f = f.And(gateway.Contains("tags", q.Tags))
	}
	return f
}

// Create validates input and stores a new transaction. The type defaults to
// expense, the date to today and the title to the description.
func (s *TransactionService) Create(ctx context.Context, input CreateTransactionInput) (*model.Transaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, s.gw, input.CategoryID); err != nil {
		return nil, err
	}

	txType := input.Type
	if txType == "" {
		txType = model.TransactionTypeExpense
	}
	date := input.Date
	if date.IsZero() {
		date = datetime.DateOf(s.now().UTC())
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = strings.TrimSpace(input.Description)
	}
	if title == "" {
		title = "Transaction"
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	values := gateway.Values{
		"category_id":        input.CategoryID,
		"title":              title,
		"description":        optional(input.Description),
		"amount":             input.Amount,
		"type":               string(txType),
		"date":               date,
		"payment_method":     input.PaymentMethod,
		"bank_name":          optional(input.BankName),
		"reference_number":   optional(input.ReferenceNumber),
		"tags":               tags,
		"is_recurring":       input.IsRecurring,
		"recurring_interval": optional(input.RecurringInterval),
		"recurring_end_date": input.RecurringEndDate,
	}

	var tx model.Transaction
	if err := s.gw.Insert(ctx, gateway.Transactions, values, &tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}
	return &tx, nil
}

// List returns the matching transactions, newest first. Search is matched
// against title, description and tags after the rows are loaded, so a search
// loads every row and applies the limit to the matches.
func (s *TransactionService) List(ctx context.Context, q TransactionQuery) ([]model.Transaction, error) {
	f := q.filter()
	if q.Search != "" {
		f.Limit = 0
	}

	var txs []model.Transaction
	order := gateway.OrderBy(gateway.Desc("date"), gateway.Desc("created_at"))
	if err := s.gw.Query(ctx, gateway.Transactions, f, order, &txs); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	if q.Search != "" {
		txs = aggregate.FilterTransactions(txs, aggregate.TransactionFilter{Search: q.Search})
		if q.Limit > 0 && len(txs) > q.Limit {
			txs = txs[:q.Limit]
		}
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	return txs, nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	tx, err := getOne[model.Transaction](ctx, s.gw, gateway.Transactions, id, "transaction")
	if err != nil {
		return nil, fmt.Errorf("getting transaction %s: %w", id, err)
	}
	return tx, nil
}

// Update applies the set fields of input to the transaction with id.
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*model.Transaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	patch := gateway.Values{}
	if input.Amount != nil {
		patch["amount"] = *input.Amount
	}
	if input.CategoryID != nil {
		if err := checkCategory(ctx, s.gw, *input.CategoryID); err != nil {
			return nil, err
		}
		patch["category_id"] = *input.CategoryID
	}
	if input.PaymentMethod != nil {
		patch["payment_method"] = *input.PaymentMethod
	}
	if input.Type != nil {
		patch["type"] = string(*input.Type)
	}
	if input.Title != nil {
		patch["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		patch["description"] = optional(*input.Description)
	}
	if input.Date != nil {
		patch["date"] = *input.Date
	}
	if input.BankName != nil {
		patch["bank_name"] = optional(*input.BankName)
	}
	if input.ReferenceNumber != nil {
		patch["reference_number"] = optional(*input.ReferenceNumber)
	}
	if input.Tags != nil {
		patch["tags"] = input.Tags
	}
	if input.IsRecurring != nil {
		patch["is_recurring"] = *input.IsRecurring
	}
	if input.RecurringInterval != nil {
		patch["recurring_interval"] = optional(*input.RecurringInterval)
	}
	if input.RecurringEndDate != nil {
		patch["recurring_end_date"] = *input.RecurringEndDate
	}

	var tx model.Transaction
	if err := s.gw.Update(ctx, gateway.Transactions, id, patch, &tx); err != nil {
		return nil, fmt.Errorf("updating transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, gateway.Transactions, id); err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	return nil
}

// Totals sums income and expenses over the transactions matching q.
func (s *TransactionService) Totals(ctx context.Context, q TransactionQuery) (model.TransactionTotals, error) {
	txs, err := s.List(ctx, q)
	if err != nil {
		return model.TransactionTotals{}, err
	}
	return aggregate.TotalsOf(txs), nil
}
