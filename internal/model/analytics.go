package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The types below are decoded from the jsonb returned by stored procedures.
// Their json tags must match the keys built in the migration SQL.

type CategorySpending struct {
	CategoryID       uuid.UUID       `json:"categoryId"`
	CategoryName     string          `json:"categoryName"`
	Icon             string          `json:"icon"`
	Color            string          `json:"color"`
	Total            decimal.Decimal `json:"total"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
}

type MonthlyTrend struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

type DashboardAnalytics struct {
	FinancialYear    int                `json:"financialYear"`
	TotalIncome      decimal.Decimal    `json:"totalIncome"`
	TotalExpenses    decimal.Decimal    `json:"totalExpenses"`
	NetSavings       decimal.Decimal    `json:"netSavings"`
	SavingsRate      float64            `json:"savingsRate"`
	TransactionCount int                `json:"transactionCount"`
	TopCategories    []CategorySpending `json:"topCategories"`
	MonthlyTrend     []MonthlyTrend     `json:"monthlyTrend"`
}

type SavingsRatePoint struct {
	Month       string          `json:"month"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Savings     decimal.Decimal `json:"savings"`
	SavingsRate float64         `json:"savingsRate"`
}

type SavingsRateAnalysis struct {
	AverageSavingsRate float64            `json:"averageSavingsRate"`
	Months             []SavingsRatePoint `json:"months"`
}

type GoalProgressSummary struct {
	TotalGoals      int             `json:"totalGoals"`
	ActiveGoals     int             `json:"activeGoals"`
	CompletedGoals  int             `json:"completedGoals"`
	TotalTarget     decimal.Decimal `json:"totalTarget"`
	TotalSaved      decimal.Decimal `json:"totalSaved"`
	OverallProgress float64         `json:"overallProgress"`
}

type InvestmentTypeSummary struct {
	Type         InvestmentType  `json:"type"`
	Count        int             `json:"count"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"currentValue"`
}

type InvestmentSummary struct {
	TotalInvestments int                     `json:"totalInvestments"`
	TotalInvested    decimal.Decimal         `json:"totalInvested"`
	CurrentValue     decimal.Decimal         `json:"currentValue"`
	TotalReturns     decimal.Decimal         `json:"totalReturns"`
	ReturnPercentage float64                 `json:"returnPercentage"`
	ByType           []InvestmentTypeSummary `json:"byType"`
}

type InvestmentReturn struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Type             InvestmentType  `json:"type"`
	InitialAmount    decimal.Decimal `json:"initialAmount"`
	CurrentValue     decimal.Decimal `json:"currentValue"`
	Returns          decimal.Decimal `json:"returns"`
	ReturnPercentage float64         `json:"returnPercentage"`
	HoldingDays      int             `json:"holdingDays"`
}

type BudgetVsActual struct {
	Month        int             `json:"month"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	Variance     decimal.Decimal `json:"variance"`
}

type MonthSummary struct {
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

type FinancialYearSummary struct {
	FinancialYear     int             `json:"financialYear"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetSavings        decimal.Decimal `json:"netSavings"`
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	BudgetUtilization float64         `json:"budgetUtilization"`
	Months            []MonthSummary  `json:"months"`
}

type CategoryMonth struct {
	Month  int             `json:"month"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

type CategoryBudgetAnalysis struct {
	CategoryID         uuid.UUID       `json:"categoryId"`
	FinancialYear      int             `json:"financialYear"`
	AnnualBudget       decimal.Decimal `json:"annualBudget"`
	MonthlyBudgetTotal decimal.Decimal `json:"monthlyBudgetTotal"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	Remaining          decimal.Decimal `json:"remaining"`
	Utilization        float64         `json:"utilization"`
	Months             []CategoryMonth `json:"months"`
}
