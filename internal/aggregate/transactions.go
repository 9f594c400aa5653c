package aggregate

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

// TransactionFilter narrows an already fetched list. Zero values match everything.
type TransactionFilter struct {
	Type          model.TransactionType
	CategoryID    uuid.UUID
	PaymentMethod string
	DateFrom      datetime.Date
	DateTo        datetime.Date
	AmountMin     decimal.Decimal
	AmountMax     decimal.Decimal
	Search        string
}

// SortTransactions orders transactions newest first.
func SortTransactions(txs []model.Transaction) []model.Transaction {
	return sortedCopy(txs, func(a, b model.Transaction) bool { return a.Date.After(b.Date.Time) })
}

// TotalsOf sums income and expenses; transfers count toward neither.
func TotalsOf(txs []model.Transaction) model.TransactionTotals {
	t := model.TransactionTotals{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero, Count: len(txs)}
	for _, tx := range txs {
		switch tx.Type {
		case model.TransactionTypeIncome:
			t.TotalIncome = t.TotalIncome.Add(tx.Amount)
		case model.TransactionTypeExpense:
			t.TotalExpenses = t.TotalExpenses.Add(tx.Amount)
		}
	}
	t.Balance = t.TotalIncome.Sub(t.TotalExpenses)
	return t
}

// FilterTransactions applies f and returns the matches newest first. Search is
// a case-insensitive substring match over title, description and tags.
func FilterTransactions(txs []model.Transaction, f TransactionFilter) []model.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	matched := Filter(txs, func(tx model.Transaction) bool {
		switch {
		case f.Type != "" && tx.Type != f.Type,
			f.CategoryID != uuid.Nil && tx.CategoryID != f.CategoryID,
			f.PaymentMethod != "" && tx.PaymentMethod != f.PaymentMethod,
			!f.DateFrom.IsZero() && tx.Date.Before(f.DateFrom.Time),
			!f.DateTo.IsZero() && tx.Date.After(f.DateTo.Time),
			!f.AmountMin.IsZero() && tx.Amount.LessThan(f.AmountMin),
			!f.AmountMax.IsZero() && tx.Amount.GreaterThan(f.AmountMax):
			return false
		}
		return search == "" || matchesSearch(tx, search)
	})
	return SortTransactions(matched)
}

func matchesSearch(tx model.Transaction, term string) bool {
	if strings.Contains(strings.ToLower(tx.Title), term) {
		return true
	}
	if tx.Description != nil && strings.Contains(strings.ToLower(*tx.Description), term) {
		return true
	}
	for _, tag := range tx.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
