package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/pkg/datetime"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

type Transaction struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	UserID            uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID        uuid.UUID       `db:"category_id" json:"categoryId"`
	Title             string          `db:"title" json:"title"`
	Description       *string         `db:"description" json:"description,omitempty"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	Type              TransactionType `db:"type" json:"type"`
	Date              datetime.Date   `db:"date" json:"date"`
	PaymentMethod     string          `db:"payment_method" json:"paymentMethod"`
	BankName          *string         `db:"bank_name" json:"bankName,omitempty"`
	ReferenceNumber   *string         `db:"reference_number" json:"referenceNumber,omitempty"`
	Tags              pq.StringArray  `db:"tags" json:"tags"`
	IsRecurring       bool            `db:"is_recurring" json:"isRecurring"`
	RecurringInterval *string         `db:"recurring_interval" json:"recurringInterval,omitempty"`
	RecurringEndDate  *datetime.Date  `db:"recurring_end_date" json:"recurringEndDate,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category is either a shared default (UserID nil, IsDefault true) or owned by one user.
type Category struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	UserID      *uuid.UUID   `db:"user_id" json:"userId,omitempty"`
	Name        string       `db:"name" json:"name"`
	Type        CategoryType `db:"type" json:"type"`
	Icon        string       `db:"icon" json:"icon"`
	Color       string       `db:"color" json:"color"`
	Description *string      `db:"description" json:"description,omitempty"`
	IsDefault   bool         `db:"is_default" json:"isDefault"`
	IsActive    bool         `db:"is_active" json:"isActive"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

type PaymentMethod struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type MonthlyBudget struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID    uuid.UUID       `db:"category_id" json:"categoryId"`
	FinancialYear int             `db:"financial_year" json:"financialYear"`
	Month         int             `db:"month" json:"month"`
	BudgetAmount  decimal.Decimal `db:"budget_amount" json:"budgetAmount"`
	Notes         *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

type AnnualBudget struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID    uuid.UUID       `db:"category_id" json:"categoryId"`
	FinancialYear int             `db:"financial_year" json:"financialYear"`
	BudgetAmount  decimal.Decimal `db:"budget_amount" json:"budgetAmount"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// BudgetPerformance is the recorded income and spend of one category in one month.
type BudgetPerformance struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID    uuid.UUID       `db:"category_id" json:"categoryId"`
	FinancialYear int             `db:"financial_year" json:"financialYear"`
	Month         int             `db:"month" json:"month"`
	TotalIncome   decimal.Decimal `db:"total_income" json:"totalIncome"`
	TotalExpense  decimal.Decimal `db:"total_expense" json:"totalExpense"`
	BudgetAmount  decimal.Decimal `db:"budget_amount" json:"budgetAmount"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

type BudgetStatus string

const (
	BudgetStatusOverBudget  BudgetStatus = "over_budget"
	BudgetStatusWarning     BudgetStatus = "warning"
	BudgetStatusOnTrack     BudgetStatus = "on_track"
	BudgetStatusUnderBudget BudgetStatus = "under_budget"
)

type BudgetUtilization struct {
	BudgetPerformance
	UtilizationPercentage float64      `json:"utilizationPercentage"`
	Status                BudgetStatus `json:"status"`
}

type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// GoalPriorities lists priorities from highest to lowest.
var GoalPriorities = []GoalPriority{GoalPriorityHigh, GoalPriorityMedium, GoalPriorityLow}

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

var GoalStatuses = []GoalStatus{GoalStatusActive, GoalStatusPaused, GoalStatusCompleted, GoalStatusCancelled}

type FinancialGoal struct {
	ID                    uuid.UUID       `db:"id" json:"id"`
	UserID                uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID            *uuid.UUID      `db:"category_id" json:"categoryId,omitempty"`
	Title                 string          `db:"title" json:"title"`
	Description           *string         `db:"description" json:"description,omitempty"`
	TargetAmount          decimal.Decimal `db:"target_amount" json:"targetAmount"`
	CurrentAmount         decimal.Decimal `db:"current_amount" json:"currentAmount"`
	TargetDate            datetime.Date   `db:"target_date" json:"targetDate"`
	Priority              GoalPriority    `db:"priority" json:"priority"`
	Status                GoalStatus      `db:"status" json:"status"`
	AutoContribute        bool            `db:"auto_contribute" json:"autoContribute"`
	ContributionAmount    decimal.Decimal `db:"contribution_amount" json:"contributionAmount"`
	ContributionFrequency string          `db:"contribution_frequency" json:"contributionFrequency"`
	CreatedAt             time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time       `db:"updated_at" json:"updatedAt"`
}

type GoalWithProgress struct {
	FinancialGoal
	ProgressPercentage float64 `json:"progressPercentage"`
}

type GoalSummary struct {
	TotalGoals     int             `json:"totalGoals"`
	ActiveGoals    int             `json:"activeGoals"`
	CompletedGoals int             `json:"completedGoals"`
	PausedGoals    int             `json:"pausedGoals"`
	OverdueGoals   int             `json:"overdueGoals"`
	DueSoonGoals   int             `json:"dueSoonGoals"`
	TotalTarget    decimal.Decimal `json:"totalTarget"`
	TotalCurrent   decimal.Decimal `json:"totalCurrent"`
	TotalProgress  float64         `json:"totalProgress"`
}

type InvestmentType string

const (
	InvestmentTypeFixedDeposit     InvestmentType = "fixed_deposit"
	InvestmentTypeRecurringDeposit InvestmentType = "recurring_deposit"
	InvestmentTypeMutualFund       InvestmentType = "mutual_fund"
	InvestmentTypeStock            InvestmentType = "stock"
	InvestmentTypeBond             InvestmentType = "bond"
	InvestmentTypePPF              InvestmentType = "ppf"
	InvestmentTypeEPF              InvestmentType = "epf"
	InvestmentTypeNPS              InvestmentType = "nps"
	InvestmentTypeGold             InvestmentType = "gold"
	InvestmentTypeRealEstate       InvestmentType = "real_estate"
	InvestmentTypeCrypto           InvestmentType = "crypto"
	InvestmentTypeOther            InvestmentType = "other"
)

type Investment struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	UserID        uuid.UUID        `db:"user_id" json:"userId"`
	GoalID        *uuid.UUID       `db:"goal_id" json:"goalId,omitempty"`
	Name          string           `db:"name" json:"name"`
	Type          InvestmentType   `db:"type" json:"type"`
	Provider      *string          `db:"provider" json:"provider,omitempty"`
	InitialAmount decimal.Decimal  `db:"initial_amount" json:"initialAmount"`
	CurrentValue  decimal.Decimal  `db:"current_value" json:"currentValue"`
	PurchaseDate  datetime.Date    `db:"purchase_date" json:"purchaseDate"`
	MaturityDate  *datetime.Date   `db:"maturity_date" json:"maturityDate,omitempty"`
	InterestRate  *decimal.Decimal `db:"interest_rate" json:"interestRate,omitempty"`
	IsActive      bool             `db:"is_active" json:"isActive"`
	Notes         *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`
}

// Returns is the gain or loss since purchase.
func (i Investment) Returns() decimal.Decimal {
	return i.CurrentValue.Sub(i.InitialAmount)
}

type InvestmentWithPortfolio struct {
	Investment
	Returns             decimal.Decimal `json:"returns"`
	PortfolioPercentage float64         `json:"portfolioPercentage"`
}

type InvestmentPerformance struct {
	TotalInvestments int             `json:"totalInvestments"`
	TotalInvested    decimal.Decimal `json:"totalInvested"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	TotalReturns     decimal.Decimal `json:"totalReturns"`
	ReturnPercentage float64         `json:"returnPercentage"`
	Profitable       int             `json:"profitable"`
	Losing           int             `json:"losing"`
}

type RecommendationPriority string

const (
	RecommendationPriorityLow    RecommendationPriority = "low"
	RecommendationPriorityMedium RecommendationPriority = "medium"
	RecommendationPriorityHigh   RecommendationPriority = "high"
)

type SavingsRecommendation struct {
	ID                uuid.UUID              `db:"id" json:"id"`
	UserID            uuid.UUID              `db:"user_id" json:"userId"`
	Title             string                 `db:"title" json:"title"`
	Description       string                 `db:"description" json:"description"`
	RecommendedAmount decimal.Decimal        `db:"recommended_amount" json:"recommendedAmount"`
	Priority          RecommendationPriority `db:"priority" json:"priority"`
	Category          string                 `db:"category" json:"category"`
	IsAccepted        bool                   `db:"is_accepted" json:"isAccepted"`
	IsCompleted       bool                   `db:"is_completed" json:"isCompleted"`
	UserFeedback      *string                `db:"user_feedback" json:"userFeedback,omitempty"`
	ExpiresAt         time.Time              `db:"expires_at" json:"expiresAt"`
	CreatedAt         time.Time              `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time              `db:"updated_at" json:"updatedAt"`
}

type TransactionTotals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
	Count         int             `json:"count"`
}
