package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"pocketa-server/src/models"
)

// Source adapts the pool to the summary engine's ExpenseSource interface.
type Source struct {
	Pool *pgxpool.Pool
}

func (s *Source) ExpensesInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	return ExpensesInRange(ctx, s.Pool, userID, start, end)
}
