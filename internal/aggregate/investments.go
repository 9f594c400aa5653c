package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/model"
)

func currentValue(i model.Investment) decimal.Decimal { return i.CurrentValue }

func initialAmount(i model.Investment) decimal.Decimal { return i.InitialAmount }

// ActiveInvestments returns the investments still held.
func ActiveInvestments(investments []model.Investment) []model.Investment {
	return Filter(investments, func(i model.Investment) bool { return i.IsActive })
}

// PortfolioPercentage is an investment's share of the summed current value of
// all active investments, or 0 when that sum is zero.
func PortfolioPercentage(inv model.Investment, all []model.Investment) float64 {
	return Percentage(inv.CurrentValue, Sum(ActiveInvestments(all), currentValue))
}

// WithPortfolio annotates every investment with its returns and portfolio share.
func WithPortfolio(investments []model.Investment) []model.InvestmentWithPortfolio {
	total := Sum(ActiveInvestments(investments), currentValue)
	out := make([]model.InvestmentWithPortfolio, len(investments))
	for i, inv := range investments {
		out[i] = model.InvestmentWithPortfolio{
			Investment:          inv,
			Returns:             inv.Returns(),
			PortfolioPercentage: Percentage(inv.CurrentValue, total),
		}
	}
	return out
}

// InvestmentsByType groups investments by their type.
func InvestmentsByType(investments []model.Investment) map[model.InvestmentType][]model.Investment {
	return GroupBy(investments, func(i model.Investment) model.InvestmentType { return i.Type })
}

// SummarizeInvestments reports performance over active investments.
func SummarizeInvestments(investments []model.Investment) model.InvestmentPerformance {
	active := ActiveInvestments(investments)
	p := model.InvestmentPerformance{
		TotalInvestments: len(active),
		TotalInvested:    Sum(active, initialAmount),
		TotalValue:       Sum(active, currentValue),
	}
	for _, inv := range active {
		switch r := inv.Returns(); {
		case r.IsPositive():
			p.Profitable++
		case r.IsNegative():
			p.Losing++
		}
	}
	p.TotalReturns = p.TotalValue.Sub(p.TotalInvested)
	p.ReturnPercentage = Percentage(p.TotalReturns, p.TotalInvested)
	return p
}
