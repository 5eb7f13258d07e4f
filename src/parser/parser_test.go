package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketa-server/src/models"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  models.Category
	}{
		{"food", models.CategoryFood},
		{"Restaurant", models.CategoryFood},
		{"  Meal  ", models.CategoryFood},
		{"UBER ride", models.CategoryTransport},
		{"going by train", models.CategoryTransport},
		{"movies", models.CategoryEntertainment},
		{"electricity bill", models.CategoryBills},
		{"xyz", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCategory(tt.input))
		})
	}
}

func TestNormalizeCategorySubstringOrder(t *testing.T) {
	// Both "bus" and "purchase" occur; the first-defined synonym wins.
	assert.Equal(t, models.CategoryTransport, normalizeCategory("bus purchase"))
}

func TestFallbackParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantAmount   float64
		wantCategory models.Category
	}{
		{"currency symbol", "₹500 food", 500, models.CategoryFood},
		{"taxi", "100 rupees for taxi", 100, models.CategoryTransport},
		{"decimal amount", "12.50 groceries", 12.5, models.CategoryFood},
		{"shopping", "2000 shopping clothes", 2000, models.CategoryShopping},
		{"entertainment", "300 movie tickets", 300, models.CategoryEntertainment},
		{"bills", "1500 utility bill", 1500, models.CategoryBills},
		{"no keyword", "999 something", 999, models.CategoryOther},
		{"no amount", "dinner with friends", 0, models.CategoryOther},
		{"empty input", "", 0, models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fallbackParse(tt.input)

			assert.Equal(t, tt.wantAmount, got.Amount)
			assert.Equal(t, tt.wantCategory, got.Category)
			// The fallback always populates the description.
			require.NotNil(t, got.Description)
		})
	}
}

func TestFallbackParseDescriptionIsTrimmedInput(t *testing.T) {
	got := fallbackParse("  100 rupees for taxi ")
	require.NotNil(t, got.Description)
	assert.Equal(t, "100 rupees for taxi", *got.Description)
}

func TestParseWithoutClientUsesFallback(t *testing.T) {
	p := &Parser{}

	got := p.Parse(context.Background(), "100 rupees for taxi")

	assert.Equal(t, 100.0, got.Amount)
	assert.Equal(t, models.CategoryTransport, got.Category)
	require.NotNil(t, got.Description)
	assert.Equal(t, "100 rupees for taxi", *got.Description)
}

func TestParseNeverFailsOnEmptyInput(t *testing.T) {
	p := &Parser{}

	got := p.Parse(context.Background(), "")

	assert.Zero(t, got.Amount)
	assert.Equal(t, models.CategoryOther, got.Category)
	require.NotNil(t, got.Description)
	assert.Equal(t, "", *got.Description)
}

func TestParseFallsBackOnModelError(t *testing.T) {
	p := &Parser{generate: func(context.Context, string) (string, error) {
		return "", errors.New("network timeout")
	}}

	got := p.Parse(context.Background(), "₹500 food")

	assert.Equal(t, 500.0, got.Amount)
	assert.Equal(t, models.CategoryFood, got.Category)
}

func TestParseFallsBackOnMalformedModelOutput(t *testing.T) {
	p := &Parser{generate: func(context.Context, string) (string, error) {
		return "sorry, I cannot help with that", nil
	}}

	got := p.Parse(context.Background(), "100 rupees for taxi")

	assert.Equal(t, 100.0, got.Amount)
	assert.Equal(t, models.CategoryTransport, got.Category)
}

func TestParseFallsBackOnInvalidModelAmount(t *testing.T) {
	p := &Parser{generate: func(context.Context, string) (string, error) {
		return `{"amount": 0, "category": "food", "description": "lunch"}`, nil
	}}

	got := p.Parse(context.Background(), "lunch for 250")

	// The fallback populating the description marks the degraded path.
	assert.Equal(t, 250.0, got.Amount)
	require.NotNil(t, got.Description)
	assert.Equal(t, "lunch for 250", *got.Description)
}

func TestParsePrimaryPath(t *testing.T) {
	p := &Parser{generate: func(context.Context, string) (string, error) {
		return `{"amount": 250, "category": "Taxi", "description": "airport ride"}`, nil
	}}

	got := p.Parse(context.Background(), "250 taxi to airport")

	assert.Equal(t, 250.0, got.Amount)
	assert.Equal(t, models.CategoryTransport, got.Category)
	require.NotNil(t, got.Description)
	assert.Equal(t, "airport ride", *got.Description)
}

func TestParsePrimaryPathStripsCodeFences(t *testing.T) {
	p := &Parser{generate: func(context.Context, string) (string, error) {
		return "```json\n{\"amount\": 42, \"category\": \"entertainment\", \"description\": null}\n```", nil
	}}

	got := p.Parse(context.Background(), "42 for a game")

	assert.Equal(t, 42.0, got.Amount)
	assert.Equal(t, models.CategoryEntertainment, got.Category)
	assert.Nil(t, got.Description)
}

func TestParsePrimaryPathOmitsEmptyDescription(t *testing.T) {
	p := &Parser{generate: func(context.Context, string) (string, error) {
		return `{"amount": 80, "category": "food", "description": ""}`, nil
	}}

	got := p.Parse(context.Background(), "80 food")

	assert.Equal(t, 80.0, got.Amount)
	assert.Nil(t, got.Description)
}

func TestNewWithoutAPIKey(t *testing.T) {
	p := New(context.Background(), "")
	require.NotNil(t, p)
	assert.Nil(t, p.generate)
}
