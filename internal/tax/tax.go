// Package tax computes Indian personal income tax from progressive slab tables.
package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/apperror"
)

// Regime selects a slab table.
type Regime string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"
)

// DefaultRegime is used when the caller names none or an unknown one.
const DefaultRegime = RegimeNew

// Slab is one band of a progressive table. A nil Max means the band is unbounded.
type Slab struct {
	Min         decimal.Decimal  `json:"min"`
	Max         *decimal.Decimal `json:"max"`
	Rate        decimal.Decimal  `json:"rate"`
	Description string           `json:"description"`
}

// SlabTax is a slab that applied to an income, with the portion taxed in it.
type SlabTax struct {
	Slab
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	Tax           decimal.Decimal `json:"tax"`
}

// Result is the outcome of a tax computation.
type Result struct {
	Regime        Regime          `json:"regime"`
	AnnualIncome  decimal.Decimal `json:"annualIncome"`
	Tax           decimal.Decimal `json:"tax"`
	EffectiveRate float64         `json:"effectiveRate"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	SlabsUsed     []SlabTax       `json:"slabsUsed"`
}

// Bands are contiguous: each band starts where the previous one ends, so a
// boundary rupee is never skipped or taxed twice.
var tables = map[Regime][]Slab{
	RegimeNew: {
		band(0, 250000, "0", "No tax"),
		band(250000, 500000, "0.05", "5% tax"),
		band(500000, 750000, "0.10", "10% tax"),
		band(750000, 1000000, "0.15", "15% tax"),
		band(1000000, 1250000, "0.20", "20% tax"),
		band(1250000, 1500000, "0.25", "25% tax"),
		top(1500000, "0.30", "30% tax"),
	},
	RegimeOld: {
		band(0, 250000, "0", "No tax"),
		band(250000, 500000, "0.05", "5% tax"),
		band(500000, 1000000, "0.20", "20% tax"),
		top(1000000, "0.30", "30% tax"),
	},
}

func band(min, max int64, rate, desc string) Slab {
	upper := decimal.NewFromInt(max)
	return Slab{Min: decimal.NewFromInt(min), Max: &upper, Rate: decimal.RequireFromString(rate), Description: desc}
}

func top(min int64, rate, desc string) Slab {
	return Slab{Min: decimal.NewFromInt(min), Rate: decimal.RequireFromString(rate), Description: desc}
}

// ParseRegime maps user input to a regime, falling back to DefaultRegime.
func ParseRegime(s string) Regime {
	r := Regime(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tables[r]; ok {
		return r
	}
	return DefaultRegime
}

// Regimes lists the known regimes.
func Regimes() []Regime {
	return []Regime{RegimeNew, RegimeOld}
}

// Slabs returns a copy of the slab table for a regime.
func Slabs(regime Regime) []Slab {
	src := tables[ParseRegime(string(regime))]
	out := make([]Slab, len(src))
	copy(out, src)
	return out
}

// Calculate applies the regime's slab table to an annual income. An unknown
// regime is treated as the new regime. Negative incomes are rejected.
func Calculate(annualIncome decimal.Decimal, regime Regime) (*Result, error) {
	if annualIncome.IsNegative() {
		return nil, apperror.ValidationError("annualIncome", "annual income cannot be negative")
	}

	regime = ParseRegime(string(regime))
	total := decimal.Zero
	used := make([]SlabTax, 0, len(tables[regime]))

	for _, s := range tables[regime] {
		if !annualIncome.GreaterThan(s.Min) {
			continue
		}
		upper := annualIncome
		if s.Max != nil && s.Max.LessThan(annualIncome) {
			upper = *s.Max
		}
		taxable := upper.Sub(s.Min)
		slabTax := taxable.Mul(s.Rate)
		total = total.Add(slabTax)
		used = append(used, SlabTax{Slab: s, TaxableAmount: taxable, Tax: slabTax})
	}

	var effective float64
	if annualIncome.IsPositive() {
		effective = total.Div(annualIncome).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	return &Result{
		Regime:        regime,
		AnnualIncome:  annualIncome,
		Tax:           total,
		EffectiveRate: effective,
		NetIncome:     annualIncome.Sub(total),
		SlabsUsed:     used,
	}, nil
}
