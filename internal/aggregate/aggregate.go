// Package aggregate derives read-only views from fetched collections: totals,
// percentages, budget status, grouping and ordering. Every function is pure and
// leaves its inputs untouched.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Budget status thresholds, in percent of income spent.
const (
	OverBudgetThreshold = 100
	WarningThreshold    = 80
)

// Sum totals one numeric field across a collection.
func Sum[T any](items []T, field func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(field(it))
	}
	return total
}

// Percentage returns part/whole*100 rounded to two places, or 0 when whole is zero.
func Percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(2).InexactFloat64()
}

// Partition maps every enumerated key to the items carrying it, preserving input
// order. Keys with no items map to an empty slice; items with a key outside the
// enumeration are dropped.
func Partition[T any, K comparable](items []T, keys []K, key func(T) K) map[K][]T {
	out := make(map[K][]T, len(keys))
	for _, k := range keys {
		out[k] = []T{}
	}
	for _, it := range items {
		k := key(it)
		if _, ok := out[k]; ok {
			out[k] = append(out[k], it)
		}
	}
	return out
}

// GroupBy groups items by an open-ended key, preserving input order.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}

// Filter returns the items matching keep, in input order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func sortedCopy[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
