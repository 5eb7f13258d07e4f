package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketa-server/src/models"
)

type fakeSource struct {
	expenses []models.Expense
	err      error

	// window captured from the last call
	start, end time.Time
}

func (f *fakeSource) ExpensesInRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	f.start, f.end = start, end
	return f.expenses, f.err
}

func exp(amount float64, category models.Category, date time.Time) models.Expense {
	return models.Expense{
		ID:       uuid.New(),
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func TestDailySummaryEmpty(t *testing.T) {
	engine := NewEngine(&fakeSource{})

	got, err := engine.Daily(context.Background(), uuid.New(), time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", got.Date)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.Count)
	assert.NotNil(t, got.Breakdown)
	assert.Empty(t, got.Breakdown)
}

func TestDailySummaryAggregation(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	source := &fakeSource{expenses: []models.Expense{
		exp(120, models.CategoryTransport, day.Add(8*time.Hour)),
		exp(45.5, models.CategoryFood, day.Add(9*time.Hour)),
		exp(30, models.CategoryTransport, day.Add(18*time.Hour)),
	}}
	engine := NewEngine(source)

	got, err := engine.Daily(context.Background(), uuid.New(), day)
	require.NoError(t, err)

	assert.Equal(t, 195.5, got.Total)
	assert.Equal(t, 3, got.Count)

	// Breakdown follows first-occurrence order, not sorted order.
	require.Len(t, got.Breakdown, 2)
	assert.Equal(t, models.CategoryTransport, got.Breakdown[0].Category)
	assert.Equal(t, 150.0, got.Breakdown[0].Amount)
	assert.Equal(t, 2, got.Breakdown[0].Count)
	assert.Equal(t, models.CategoryFood, got.Breakdown[1].Category)
	assert.Equal(t, 45.5, got.Breakdown[1].Amount)
	assert.Equal(t, 1, got.Breakdown[1].Count)

	// Breakdown amounts sum to the total.
	var sum float64
	for _, b := range got.Breakdown {
		sum += b.Amount
	}
	assert.Equal(t, got.Total, sum)
}

func TestDailySummaryWindow(t *testing.T) {
	source := &fakeSource{}
	engine := NewEngine(source)

	_, err := engine.Daily(context.Background(), uuid.New(), time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), source.start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999000000, time.Local), source.end)
}

func TestWeeklySummaryDailyTotals(t *testing.T) {
	// Sparse week: expenses on two of seven days only.
	source := &fakeSource{expenses: []models.Expense{
		exp(100, models.CategoryFood, time.Date(2024, 3, 11, 9, 0, 0, 0, time.Local)),
		exp(50, models.CategoryBills, time.Date(2024, 3, 11, 20, 0, 0, 0, time.Local)),
		exp(75, models.CategoryFood, time.Date(2024, 3, 14, 13, 0, 0, 0, time.Local)),
	}}
	engine := NewEngine(source)

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 16, 23, 59, 59, 999000000, time.Local)
	got, err := engine.Weekly(context.Background(), uuid.New(), start, end)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10 to 2024-03-16", got.Week)
	assert.Equal(t, "2024-03-10", got.StartDate)
	assert.Equal(t, "2024-03-16", got.EndDate)
	assert.Equal(t, 225.0, got.Total)
	assert.Equal(t, 3, got.Count)

	// Only dates that actually have expenses appear, in encounter order.
	require.Len(t, got.DailyTotals, 2)
	assert.Equal(t, models.DailyTotal{Date: "2024-03-11", Total: 150}, got.DailyTotals[0])
	assert.Equal(t, models.DailyTotal{Date: "2024-03-14", Total: 75}, got.DailyTotals[1])

	var sum float64
	for _, d := range got.DailyTotals {
		sum += d.Total
	}
	assert.Equal(t, got.Total, sum)
}

func TestWeeklySummaryPropagatesSourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	engine := NewEngine(source)

	_, err := engine.Weekly(context.Background(), uuid.New(), time.Now().AddDate(0, 0, -7), time.Now())
	assert.Error(t, err)
}

func TestMonthlySummary(t *testing.T) {
	source := &fakeSource{expenses: []models.Expense{
		exp(1000, models.CategoryBills, time.Date(2024, 2, 1, 10, 0, 0, 0, time.Local)),
		exp(200, models.CategoryShopping, time.Date(2024, 2, 29, 10, 0, 0, 0, time.Local)),
	}}
	engine := NewEngine(source)

	got, err := engine.Monthly(context.Background(), uuid.New(), 2024, 2)
	require.NoError(t, err)

	assert.Equal(t, "February", got.Month)
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 1200.0, got.Total)
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.DailyTotals, 2)
	assert.Equal(t, "2024-02-29", got.DailyTotals[1].Date)
}

func TestMonthWindowLeapYear(t *testing.T) {
	start, end := MonthWindow(2024, 2)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.Local), end)
}

func TestMonthWindowNonLeapYear(t *testing.T) {
	_, end := MonthWindow(2023, 2)
	assert.Equal(t, 28, end.Day())
}

func TestMonthWindowDecember(t *testing.T) {
	start, end := MonthWindow(2024, 12)
	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 999000000, time.Local), end)
}

func TestCurrentWeekWindow(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	now := time.Date(2024, 3, 13, 15, 45, 0, 0, time.Local)
	start, end := CurrentWeekWindow(now)

	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Saturday, end.Weekday())
	assert.Equal(t, time.Date(2024, 3, 16, 23, 59, 59, 999000000, time.Local), end)
}

func TestCurrentWeekWindowOnSunday(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	start, _ := CurrentWeekWindow(now)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), start)
}
