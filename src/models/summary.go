package models

// CategoryBreakdown is a per-category aggregate over a set of expenses.
// It is recomputed per query and never persisted.
type CategoryBreakdown struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
	Count    int      `json:"count"`
}

// DailyTotal is one entry of a sparse per-date totals list. Date is an
// ISO 8601 date string such as "2024-03-15".
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type DailySummary struct {
	Date      string              `json:"date"`
	Total     float64             `json:"total"`
	Count     int                 `json:"count"`
	Breakdown []CategoryBreakdown `json:"breakdown"`
}

type WeeklySummary struct {
	Week        string              `json:"week"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Total       float64             `json:"total"`
	Count       int                 `json:"count"`
	Breakdown   []CategoryBreakdown `json:"breakdown"`
	DailyTotals []DailyTotal        `json:"daily_totals"`
}

type MonthlySummary struct {
	Month       string              `json:"month"`
	Year        int                 `json:"year"`
	Total       float64             `json:"total"`
	Count       int                 `json:"count"`
	Breakdown   []CategoryBreakdown `json:"breakdown"`
	DailyTotals []DailyTotal        `json:"daily_totals"`
}

// ParsedExpense is the best-effort structure produced by the voice parser.
// It becomes an Expense only if the caller submits it for creation.
type ParsedExpense struct {
	Amount      float64  `json:"amount"`
	Category    Category `json:"category"`
	Description *string  `json:"description,omitempty"`
}
