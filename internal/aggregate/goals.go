package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

// DueSoonWindow is how far ahead an active goal counts as due soon.
const DueSoonWindow = 30 * 24 * time.Hour

var priorityRank = map[model.GoalPriority]int{
	model.GoalPriorityHigh:   3,
	model.GoalPriorityMedium: 2,
	model.GoalPriorityLow:    1,
}

// GoalProgress returns current/target*100, or 0 for a goal with no target.
func GoalProgress(g model.FinancialGoal) float64 {
	return Percentage(g.CurrentAmount, g.TargetAmount)
}

// GoalsWithProgress annotates each goal with its progress percentage.
func GoalsWithProgress(goals []model.FinancialGoal) []model.GoalWithProgress {
	out := make([]model.GoalWithProgress, len(goals))
	for i, g := range goals {
		out[i] = model.GoalWithProgress{FinancialGoal: g, ProgressPercentage: GoalProgress(g)}
	}
	return out
}

// SortGoals orders goals by priority, highest first, then by earliest target date.
func SortGoals(goals []model.FinancialGoal) []model.FinancialGoal {
	return sortedCopy(goals, func(a, b model.FinancialGoal) bool {
		if ra, rb := priorityRank[a.Priority], priorityRank[b.Priority]; ra != rb {
			return ra > rb
		}
		return a.TargetDate.Before(b.TargetDate.Time)
	})
}

// GoalsByStatus partitions goals over every known status.
func GoalsByStatus(goals []model.FinancialGoal) map[model.GoalStatus][]model.FinancialGoal {
	return Partition(goals, model.GoalStatuses, func(g model.FinancialGoal) model.GoalStatus { return g.Status })
}

// GoalsByPriority partitions goals over every known priority.
func GoalsByPriority(goals []model.FinancialGoal) map[model.GoalPriority][]model.FinancialGoal {
	return Partition(goals, model.GoalPriorities, func(g model.FinancialGoal) model.GoalPriority { return g.Priority })
}

// HighPriorityActiveGoals returns active goals marked high priority.
func HighPriorityActiveGoals(goals []model.FinancialGoal) []model.FinancialGoal {
	return Filter(goals, func(g model.FinancialGoal) bool {
		return g.Status == model.GoalStatusActive && g.Priority == model.GoalPriorityHigh
	})
}

// SummarizeGoals counts goals by status and totals the active ones. Overdue and
// due-soon counts only consider active goals, relative to now's calendar day.
func SummarizeGoals(goals []model.FinancialGoal, now time.Time) model.GoalSummary {
	today := datetime.StartOfDay(now)
	horizon := today.Add(DueSoonWindow)

	s := model.GoalSummary{TotalGoals: len(goals), TotalTarget: decimal.Zero, TotalCurrent: decimal.Zero}
	for _, g := range goals {
		switch g.Status {
		case model.GoalStatusActive:
			s.ActiveGoals++
			s.TotalTarget = s.TotalTarget.Add(g.TargetAmount)
			s.TotalCurrent = s.TotalCurrent.Add(g.CurrentAmount)
			switch {
			case g.TargetDate.Before(today):
				s.OverdueGoals++
			case !g.TargetDate.After(horizon):
				s.DueSoonGoals++
			}
		case model.GoalStatusCompleted:
			s.CompletedGoals++
		case model.GoalStatusPaused:
			s.PausedGoals++
		}
	}
	s.TotalProgress = Percentage(s.TotalCurrent, s.TotalTarget)
	return s
}
