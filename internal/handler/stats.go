package handler

import (
	"net/http"
	"sort"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/stats"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StatsHandler serves the derived dashboard views. All math lives in
// the stats package; this handler only fetches collections and shapes
// the response.
type StatsHandler struct {
	Transactions *store.TransactionStore
	Planned      *store.PlannedExpenseStore
	Savings      *store.SavingStore
}

func NewStatsHandler(transactions *store.TransactionStore, planned *store.PlannedExpenseStore, savings *store.SavingStore) *StatsHandler {
	return &StatsHandler{Transactions: transactions, Planned: planned, Savings: savings}
}

type categoryTotalResp struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	Total      decimal.Decimal `json:"total"`
}

func toCategoryTotalResps(totals []stats.CategoryTotal) []categoryTotalResp {
	out := make([]categoryTotalResp, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalResp(ct))
	}
	return out
}

// Summary returns balance, totals and category breakdowns for an
// optional ?start=&end= date range (inclusive, YYYY-MM-DD).
func (h *StatsHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var period stats.Period
	if s := c.Query("start"); s != "" {
		start, err := util.ParseDate(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		period.Start = start
	}
	if s := c.Query("end"); s != "" {
		end, err := util.ParseDate(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		period.End = end
	}

	txs, err := h.Transactions.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	savings, err := h.Savings.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	inPeriod := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if period.Contains(txs[i].Date) {
			inPeriod = append(inPeriod, txs[i])
		}
	}
	savingsInPeriod := make([]models.Saving, 0, len(savings))
	for i := range savings {
		if period.Contains(savings[i].Date) {
			savingsInPeriod = append(savingsInPeriod, savings[i])
		}
	}

	income, expense := stats.Totals(inPeriod)
	totalSavings := stats.SavingsTotal(savingsInPeriod)

	c.JSON(http.StatusOK, gin.H{
		"balance":           income.Sub(expense),
		"totalIncome":       income,
		"totalExpense":      expense,
		"totalSavings":      totalSavings,
		"savingsPercentage": stats.SavingsPercentage(totalSavings, income),
		"incomeByCategory":  toCategoryTotalResps(stats.CategoryTotals(inPeriod, models.TypeIncome, period)),
		"expenseByCategory": toCategoryTotalResps(stats.CategoryTotals(inPeriod, models.TypeExpense, period)),
	})
}

type weekBucketResp struct {
	Start   string          `json:"start"`
	End     string          `json:"end"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type balancePointResp struct {
	TransactionID string          `json:"transactionId"`
	Date          string          `json:"date"`
	Balance       decimal.Decimal `json:"balance"`
}

type plannedVsActualResp struct {
	CategoryID    string          `json:"categoryId"`
	Name          string          `json:"name"`
	PlannedAmount decimal.Decimal `json:"plannedAmount"`
	SpentAmount   decimal.Decimal `json:"spentAmount"`
}

// Monthly returns the weekly buckets, running balance history and
// planned-vs-actual rows for one ?month=YYYY-MM (default: current).
func (h *StatsHandler) Monthly(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	monthStr := c.DefaultQuery("month", time.Now().UTC().Format("2006-01"))
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid month format, want YYYY-MM")
		return
	}
	year, month := t.Year(), t.Month()
	period := stats.MonthPeriod(year, month)

	txs, err := h.Transactions.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	planned, err := h.Planned.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	buckets := stats.WeeklyBuckets(txs, year, month)
	weekResps := make([]weekBucketResp, 0, len(buckets))
	for _, b := range buckets {
		weekResps = append(weekResps, weekBucketResp{
			Start:   util.FormatDate(b.Start),
			End:     util.FormatDate(b.End),
			Income:  b.Income,
			Expense: b.Expense,
		})
	}

	starting, points := stats.RunningBalance(txs, period)
	pointResps := make([]balancePointResp, 0, len(points))
	for _, p := range points {
		pointResps = append(pointResps, balancePointResp{
			TransactionID: p.TransactionID,
			Date:          util.FormatDate(p.Date),
			Balance:       p.Balance,
		})
	}

	// planned-vs-actual for every category touched by this month's
	// planned expenses or actual spending
	type catInfo struct{ name string }
	seen := map[string]catInfo{}
	for i := range planned {
		p := &planned[i]
		if p.Date.Year() == year && p.Date.Month() == month {
			seen[p.CategoryID] = catInfo{name: p.Category.Name}
		}
	}
	for i := range txs {
		tx := &txs[i]
		if tx.Type == models.TypeExpense && tx.Date.Year() == year && tx.Date.Month() == month {
			if _, ok := seen[tx.CategoryID]; !ok {
				seen[tx.CategoryID] = catInfo{name: tx.Category.Name}
			}
		}
	}

	pva := make([]plannedVsActualResp, 0, len(seen))
	for catID, info := range seen {
		plannedAmt, spent := stats.PlannedVsActual(planned, txs, catID, year, month)
		pva = append(pva, plannedVsActualResp{
			CategoryID:    catID,
			Name:          info.name,
			PlannedAmount: plannedAmt,
			SpentAmount:   spent,
		})
	}
	sort.Slice(pva, func(i, j int) bool { return pva[i].Name < pva[j].Name })

	c.JSON(http.StatusOK, gin.H{
		"month":           monthStr,
		"weeks":           weekResps,
		"startingBalance": starting,
		"balanceHistory":  pointResps,
		"plannedVsActual": pva,
	})
}
