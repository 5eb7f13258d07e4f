package util

import (
	"strings"
	"time"

	"pocketa-server/src/models"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses either a full RFC 3339 timestamp or a bare calendar
// date such as "2024-03-15".
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func categoryList() string {
	parts := make([]string, 0, len(models.ValidCategories))
	for _, c := range models.ValidCategories {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

// ValidateExpense checks each field only when present, so it serves both
// create and partial-update requests. It has no side effects.
func ValidateExpense(amount *float64, category *string, date *string) error {
	if amount != nil && *amount <= 0 {
		return NewValidationError("Amount must be a positive number")
	}

	if category != nil && !models.Category(*category).IsValid() {
		return NewValidationError("Category must be one of: " + categoryList())
	}

	if date != nil {
		if _, err := ParseDate(*date); err != nil {
			return NewValidationError("Invalid date format")
		}
	}

	return nil
}

// ValidateDateRange parses both bounds and checks their ordering.
func ValidateDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("Invalid date range format")
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("Invalid date range format")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, NewValidationError("Start date must be before end date")
	}
	return start, end, nil
}
