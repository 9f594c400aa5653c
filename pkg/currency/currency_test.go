package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedCurrencies(t *testing.T) {
	currencies := SupportedCurrencies()
	assert.Len(t, currencies, 4)
	assert.Equal(t, INR, currencies[0])
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"INR", true},
		{"USD", true},
		{"inr", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.code))
		})
	}
}

func TestFormatINR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		want   string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"100000", "₹1,00,000"},
		{"1234567.5", "₹12,34,567.5"},
		{"12345678.456", "₹1,23,45,678.46"},
		{"-250000", "-₹2,50,000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.amount, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatINR(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatIndianNumber(t *testing.T) {
	assert.Equal(t, "10,00,00,000", FormatIndianNumber(decimal.NewFromInt(100000000)))
	assert.Equal(t, "-1,500", FormatIndianNumber(decimal.NewFromInt(-1500)))
}

func TestMoneyFormatThousands(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("1234567.891"), USD)
	assert.Equal(t, "$1,234,567.89", m.Format())
}

func TestMoneyFormatUnknownCurrency(t *testing.T) {
	m := NewMoney(decimal.NewFromInt(5), Currency("XYZ"))
	assert.Equal(t, "5.00 XYZ", m.Format())
}

func TestNewMoneyDefaultsToINR(t *testing.T) {
	m := NewMoney(decimal.NewFromInt(10), "")
	assert.Equal(t, INR, m.Currency)
}

func TestMoneyAdd(t *testing.T) {
	a := INRAmount(decimal.NewFromInt(100))

	sum, err := a.Add(INRAmount(decimal.NewFromInt(50)))
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.NewFromInt(150)))

	_, err = a.Add(NewMoney(decimal.NewFromInt(1), USD))
	assert.Error(t, err)
}
