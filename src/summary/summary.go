package summary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pocketa-server/src/models"
)

// ExpenseSource is the read capability the engine aggregates over. Results
// must be ordered ascending by date; daily-totals ordering depends on it.
type ExpenseSource interface {
	ExpensesInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
}

// Engine computes on-demand rollups. Nothing is cached or persisted; each
// call is a single read-then-reduce against the source.
type Engine struct {
	source ExpenseSource
}

func NewEngine(source ExpenseSource) *Engine {
	return &Engine{source: source}
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

const isoDate = "2006-01-02"

// DayWindow is [00:00:00.000, 23:59:59.999] of date's calendar day in
// server-local time.
func DayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, time.Local)
	return start, end
}

// CurrentWeekWindow is the calendar week containing now: Sunday 00:00:00
// through the following Saturday 23:59:59.999.
func CurrentWeekWindow(now time.Time) (time.Time, time.Time) {
	sunday := now.AddDate(0, 0, -int(now.Weekday()))
	start := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, time.Local)
	saturday := start.AddDate(0, 0, 6)
	end := time.Date(saturday.Year(), saturday.Month(), saturday.Day(), 23, 59, 59, 999000000, time.Local)
	return start, end
}

// MonthWindow spans the whole month. The last day is day 0 of the
// following month, which time.Date normalizes, so leap years come out
// right.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 999000000, time.Local)
	return start, end
}

type aggregate struct {
	total       float64
	breakdown   []models.CategoryBreakdown
	dailyTotals []models.DailyTotal
}

// reduce walks the expense set once. Breakdown entries appear in order of
// first occurrence, not sorted; categories with no expenses are omitted.
// Daily totals are sparse: only dates with at least one expense appear.
func reduce(expenses []models.Expense) aggregate {
	agg := aggregate{
		breakdown:   []models.CategoryBreakdown{},
		dailyTotals: []models.DailyTotal{},
	}
	categoryIndex := make(map[models.Category]int)
	dateIndex := make(map[string]int)

	for _, e := range expenses {
		agg.total += e.Amount

		if i, ok := categoryIndex[e.Category]; ok {
			agg.breakdown[i].Amount += e.Amount
			agg.breakdown[i].Count++
		} else {
			categoryIndex[e.Category] = len(agg.breakdown)
			agg.breakdown = append(agg.breakdown, models.CategoryBreakdown{
				Category: e.Category,
				Amount:   e.Amount,
				Count:    1,
			})
		}

		dateKey := e.Date.Format(isoDate)
		if i, ok := dateIndex[dateKey]; ok {
			agg.dailyTotals[i].Total += e.Amount
		} else {
			dateIndex[dateKey] = len(agg.dailyTotals)
			agg.dailyTotals = append(agg.dailyTotals, models.DailyTotal{
				Date:  dateKey,
				Total: e.Amount,
			})
		}
	}
	return agg
}

func (e *Engine) Daily(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailySummary, error) {
	start, end := DayWindow(date)

	expenses, err := e.source.ExpensesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	agg := reduce(expenses)
	return &models.DailySummary{
		Date:      date.Format(isoDate),
		Total:     agg.total,
		Count:     len(expenses),
		Breakdown: agg.breakdown,
	}, nil
}

func (e *Engine) Weekly(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.WeeklySummary, error) {
	expenses, err := e.source.ExpensesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	agg := reduce(expenses)
	return &models.WeeklySummary{
		Week:        start.Format(isoDate) + " to " + end.Format(isoDate),
		StartDate:   start.Format(isoDate),
		EndDate:     end.Format(isoDate),
		Total:       agg.total,
		Count:       len(expenses),
		Breakdown:   agg.breakdown,
		DailyTotals: agg.dailyTotals,
	}, nil
}

func (e *Engine) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (*models.MonthlySummary, error) {
	start, end := MonthWindow(year, month)

	expenses, err := e.source.ExpensesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	agg := reduce(expenses)
	return &models.MonthlySummary{
		Month:       monthNames[month-1],
		Year:        year,
		Total:       agg.total,
		Count:       len(expenses),
		Breakdown:   agg.breakdown,
		DailyTotals: agg.dailyTotals,
	}, nil
}
