// Package stats derives dashboard views from the ledger collections.
// Every function is pure: no mutation of inputs, deterministic output.
package stats

import (
	"sort"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Period is an inclusive calendar-date range. A zero Start or End leaves
// that side unbounded.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls within the period.
func (p Period) Contains(d time.Time) bool {
	if !p.Start.IsZero() && d.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && d.After(p.End) {
		return false
	}
	return true
}

// MonthPeriod returns the inclusive period covering one month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// Totals sums income and expense amounts over the transactions.
func Totals(txs []models.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for i := range txs {
		switch txs[i].Type {
		case models.TypeIncome:
			income = income.Add(txs[i].Amount)
		case models.TypeExpense:
			expense = expense.Add(txs[i].Amount)
		}
	}
	return income, expense
}

// Balance is total income minus total expense.
func Balance(txs []models.Transaction) decimal.Decimal {
	income, expense := Totals(txs)
	return income.Sub(expense)
}

// CategoryTotal is an amount aggregated by category.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Icon       string
	Total      decimal.Decimal
}

// CategoryTotals groups amounts by category for one transaction type
// within the period. Ordered by total descending, name as tiebreak.
func CategoryTotals(txs []models.Transaction, txType string, p Period) []CategoryTotal {
	byID := make(map[string]*CategoryTotal)
	for i := range txs {
		t := &txs[i]
		if t.Type != txType || !p.Contains(t.Date) {
			continue
		}
		ct, ok := byID[t.CategoryID]
		if !ok {
			ct = &CategoryTotal{
				CategoryID: t.CategoryID,
				Name:       t.Category.Name,
				Color:      t.Category.Color,
				Icon:       t.Category.Icon,
				Total:      decimal.Zero,
			}
			byID[t.CategoryID] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(byID))
	for _, ct := range byID {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PlannedVsActual compares the planned amount against actual expense
// spending for one category and month. No enforcement is derived from
// it: spending may exceed the plan.
func PlannedVsActual(planned []models.PlannedExpense, txs []models.Transaction,
	categoryID string, year int, month time.Month) (plannedAmount, spentAmount decimal.Decimal) {

	plannedAmount, spentAmount = decimal.Zero, decimal.Zero
	for i := range planned {
		p := &planned[i]
		if p.CategoryID == categoryID && p.Date.Year() == year && p.Date.Month() == month {
			plannedAmount = plannedAmount.Add(p.Amount)
		}
	}
	for i := range txs {
		t := &txs[i]
		if t.Type == models.TypeExpense && t.CategoryID == categoryID &&
			t.Date.Year() == year && t.Date.Month() == month {
			spentAmount = spentAmount.Add(t.Amount)
		}
	}
	return plannedAmount, spentAmount
}

// SavingsTotal sums savings amounts.
func SavingsTotal(savings []models.Saving) decimal.Decimal {
	total := decimal.Zero
	for i := range savings {
		total = total.Add(savings[i].Amount)
	}
	return total
}

// SavingsPercentage is totalSavings / totalIncome * 100, and zero when
// there is no income.
func SavingsPercentage(totalSavings, totalIncome decimal.Decimal) decimal.Decimal {
	if totalIncome.IsZero() {
		return decimal.Zero
	}
	return totalSavings.Div(totalIncome).Mul(decimal.NewFromInt(100)).Round(2)
}
