// Package allocation splits a monthly surplus across investment buckets
// according to a risk profile.
package allocation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskProfile selects an allocation table.
type RiskProfile string

const (
	Conservative RiskProfile = "conservative"
	Moderate     RiskProfile = "moderate"
	Aggressive   RiskProfile = "aggressive"
)

// DefaultProfile is used for unknown profiles.
const DefaultProfile = Moderate

// Type identifies an investment bucket.
type Type string

const (
	EmergencyFund      Type = "emergency_fund"
	FixedDeposit       Type = "fixed_deposit"
	RecurringDeposit   Type = "recurring_deposit"
	DebtFund           Type = "debt_fund"
	EquityFund         Type = "equity_fund"
	Stock              Type = "stock"
	EmergencyShortfall Type = "emergency_shortfall"
)

// Allocation is one recommended bucket.
type Allocation struct {
	Type        Type            `json:"type"`
	Percentage  int             `json:"percentage"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Plan bundles the allocations for a surplus with a profile explanation.
type Plan struct {
	RiskProfile    RiskProfile     `json:"riskProfile"`
	MonthlySurplus decimal.Decimal `json:"monthlySurplus"`
	Allocations    []Allocation    `json:"allocations"`
	Explanation    string          `json:"explanation"`
}

type share struct {
	typ Type
	pct int
}

var tables = map[RiskProfile][]share{
	Conservative: {{EmergencyFund, 40}, {FixedDeposit, 30}, {RecurringDeposit, 20}, {DebtFund, 10}, {EquityFund, 0}, {Stock, 0}},
	Moderate:     {{EmergencyFund, 20}, {FixedDeposit, 20}, {RecurringDeposit, 15}, {DebtFund, 25}, {EquityFund, 15}, {Stock, 5}},
	Aggressive:   {{EmergencyFund, 10}, {FixedDeposit, 10}, {RecurringDeposit, 10}, {DebtFund, 20}, {EquityFund, 35}, {Stock, 15}},
}

var descriptions = map[Type]string{
	EmergencyFund:      "Emergency fund for unexpected expenses (3-6 months of expenses)",
	FixedDeposit:       "Fixed Deposit - Safe investment with guaranteed returns",
	RecurringDeposit:   "Recurring Deposit - Monthly savings with fixed returns",
	DebtFund:           "Debt Mutual Funds - Lower risk, stable returns",
	EquityFund:         "Equity Mutual Funds - Higher risk, higher potential returns",
	Stock:              "Direct Stocks - High risk, high return potential",
	EmergencyShortfall: "No surplus available for investment. Focus on reducing expenses.",
}

var explanations = map[RiskProfile]string{
	Conservative: "Conservative approach focusing on capital preservation with stable returns",
	Moderate:     "Balanced approach mixing safety and growth potential",
	Aggressive:   "Growth-focused approach with higher risk for potentially higher returns",
}

// ParseRiskProfile maps user input to a profile, falling back to DefaultProfile.
func ParseRiskProfile(s string) RiskProfile {
	p := RiskProfile(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tables[p]; ok {
		return p
	}
	return DefaultProfile
}

// Describe returns the human description of a bucket.
func Describe(t Type) string {
	if d, ok := descriptions[t]; ok {
		return d
	}
	return "Investment option"
}

// Recommend splits a monthly surplus across the buckets of a risk profile.
// Buckets with a zero share are left out and each amount is rounded to the
// nearest rupee. A surplus of zero or less yields a single shortfall entry.
func Recommend(monthlySurplus decimal.Decimal, profile RiskProfile) []Allocation {
	if !monthlySurplus.IsPositive() {
		return []Allocation{{
			Type:        EmergencyShortfall,
			Percentage:  0,
			Amount:      decimal.Zero,
			Description: Describe(EmergencyShortfall),
		}}
	}

	hundred := decimal.NewFromInt(100)
	rows := tables[ParseRiskProfile(string(profile))]
	out := make([]Allocation, 0, len(rows))
	for _, r := range rows {
		if r.pct == 0 {
			continue
		}
		out = append(out, Allocation{
			Type:        r.typ,
			Percentage:  r.pct,
			Amount:      monthlySurplus.Mul(decimal.NewFromInt(int64(r.pct))).Div(hundred).Round(0),
			Description: Describe(r.typ),
		})
	}
	return out
}

// Explain describes the reasoning behind a profile's allocation.
func Explain(profile RiskProfile) string {
	profile = ParseRiskProfile(string(profile))
	return fmt.Sprintf("Based on your %s risk profile: %s. The recommendations allocate your monthly surplus "+
		"across different investment types to balance risk and return according to your preferences.",
		profile, explanations[profile])
}

// BuildPlan combines Recommend and Explain for a surplus.
func BuildPlan(monthlySurplus decimal.Decimal, profile RiskProfile) Plan {
	profile = ParseRiskProfile(string(profile))
	return Plan{
		RiskProfile:    profile,
		MonthlySurplus: monthlySurplus,
		Allocations:    Recommend(monthlySurplus, profile),
		Explanation:    Explain(profile),
	}
}
