// Package currency provides monetary values and Indian-style amount formatting.
// All monetary amounts are decimal.Decimal to avoid floating-point errors.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

const (
	INR Currency = "INR" // Indian Rupee
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the currency every stored amount is denominated in.
const DefaultCurrency = INR

// Grouping selects how digits left of the decimal point are grouped.
type Grouping int

const (
	// GroupThousands groups every three digits: 1,234,567.
	GroupThousands Grouping = iota
	// GroupLakh groups the last three digits, then every two: 12,34,567.
	GroupLakh
)

// CurrencyInfo contains metadata about a currency.
type CurrencyInfo struct {
	Code          Currency
	Name          string
	Symbol        string
	DecimalPlaces int
	Grouping      Grouping
}

var currencies = map[Currency]CurrencyInfo{
	INR: {Code: INR, Name: "Indian Rupee", Symbol: "₹", DecimalPlaces: 2, Grouping: GroupLakh},
	USD: {Code: USD, Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, Grouping: GroupThousands},
	EUR: {Code: EUR, Name: "Euro", Symbol: "€", DecimalPlaces: 2, Grouping: GroupThousands},
	GBP: {Code: GBP, Name: "British Pound", Symbol: "£", DecimalPlaces: 2, Grouping: GroupThousands},
}

// SupportedCurrencies returns all supported currency codes, default first.
func SupportedCurrencies() []Currency {
	return []Currency{INR, USD, EUR, GBP}
}

// IsValid checks if a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// GetInfo returns metadata for a currency code.
func GetInfo(code Currency) (CurrencyInfo, bool) {
	info, ok := currencies[code]
	return info, ok
}

// Money represents a monetary amount with currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney creates a new Money value.
func NewMoney(amount decimal.Decimal, curr Currency) Money {
	if curr == "" {
		curr = DefaultCurrency
	}
	return Money{Amount: amount, Currency: curr}
}

// INRAmount creates a rupee amount.
func INRAmount(amount decimal.Decimal) Money {
	return NewMoney(amount, INR)
}

// Add returns the sum of two Money values.
// Returns an error if currencies don't match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return NewMoney(m.Amount.Add(other.Amount), m.Currency), nil
}

// Format renders the amount with the currency symbol, its digit grouping and at
// most DecimalPlaces fraction digits. Trailing fraction zeros are dropped, so
// 1234567.50 INR formats as "₹12,34,567.5".
func (m Money) Format() string {
	info, ok := GetInfo(m.Currency)
	if !ok {
		return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
	}

	sign := ""
	amount := m.Amount.Round(int32(info.DecimalPlaces))
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	return sign + info.Symbol + group(amount.String(), info.Grouping)
}

// String returns the amount as a plain string.
func (m Money) String() string {
	info, ok := GetInfo(m.Currency)
	if !ok {
		return m.Amount.String()
	}
	return m.Amount.Round(int32(info.DecimalPlaces)).String()
}

// FormatINR formats a rupee amount in lakh/crore grouping, e.g. "₹1,00,000".
func FormatINR(amount decimal.Decimal) string {
	return INRAmount(amount).Format()
}

// FormatIndianNumber groups a plain number in lakh/crore style without a symbol.
func FormatIndianNumber(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + group(amount.String(), GroupLakh)
}

func group(s string, g Grouping) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var parts []string
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		size := 3
		if g == GroupLakh {
			size = 2
		}
		for len(head) > size {
			parts = append([]string{head[len(head)-size:]}, parts...)
			head = head[:len(head)-size]
		}
		parts = append([]string{head}, parts...)
		parts = append(parts, tail)
	} else {
		parts = []string{intPart}
	}

	out := strings.Join(parts, ",")
	if hasFrac {
		out += "." + frac
	}
	return out
}
