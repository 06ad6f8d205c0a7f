package stats

import (
	"sort"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// BalancePoint is one step of the running balance history.
type BalancePoint struct {
	TransactionID string
	Date          time.Time
	Balance       decimal.Decimal
}

// RunningBalance produces the per-transaction balance history for a
// window. The starting balance is the signed sum of everything strictly
// before the window start; each point then carries the balance after
// applying that transaction, in ascending date order.
func RunningBalance(txs []models.Transaction, window Period) (starting decimal.Decimal, points []BalancePoint) {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	starting = decimal.Zero
	for i := range sorted {
		if !window.Start.IsZero() && sorted[i].Date.Before(window.Start) {
			starting = starting.Add(sorted[i].SignedAmount())
		}
	}

	points = []BalancePoint{}
	running := starting
	for i := range sorted {
		t := &sorted[i]
		if !window.Start.IsZero() && t.Date.Before(window.Start) {
			continue
		}
		if !window.End.IsZero() && t.Date.After(window.End) {
			continue
		}
		running = running.Add(t.SignedAmount())
		points = append(points, BalancePoint{
			TransactionID: t.ID,
			Date:          t.Date,
			Balance:       running,
		})
	}
	return starting, points
}

// WeekBucket is one ISO-week slice of a month with its income and
// expense sums. Start and End are clipped to the month.
type WeekBucket struct {
	Start   time.Time
	End     time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// isoWeekday maps Monday to 1 ... Sunday to 7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeeklyBuckets partitions a month at ISO week boundaries into at most
// five buckets; the fifth absorbs any trailing days. Transactions whose
// date falls within [Start, End] inclusive are summed per bucket.
func WeeklyBuckets(txs []models.Transaction, year int, month time.Month) []WeekBucket {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var buckets []WeekBucket
	cur := monthStart
	for !cur.After(monthEnd) {
		end := cur.AddDate(0, 0, 7-isoWeekday(cur)) // Sunday of cur's ISO week
		if end.After(monthEnd) || len(buckets) == 4 {
			end = monthEnd
		}
		buckets = append(buckets, WeekBucket{
			Start:   cur,
			End:     end,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
		cur = end.AddDate(0, 0, 1)
	}

	for i := range txs {
		t := &txs[i]
		for b := range buckets {
			if t.Date.Before(buckets[b].Start) || t.Date.After(buckets[b].End) {
				continue
			}
			switch t.Type {
			case models.TypeIncome:
				buckets[b].Income = buckets[b].Income.Add(t.Amount)
			case models.TypeExpense:
				buckets[b].Expense = buckets[b].Expense.Add(t.Amount)
			}
			break
		}
	}
	return buckets
}
