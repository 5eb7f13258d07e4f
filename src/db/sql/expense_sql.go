package db

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pocketa-server/src/models"
)

const expenseColumns = `id, user_id, amount, category, description, date, created_at, updated_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func CreateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, amount, category, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + expenseColumns
	return scanExpense(pool.QueryRow(ctx, query,
		expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date))
}

func GetExpenseByID(ctx context.Context, pool *pgxpool.Pool, userID, expenseID uuid.UUID) (*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses WHERE id = $1 AND user_id = $2
	`
	return scanExpense(pool.QueryRow(ctx, query, expenseID, userID))
}

// ExpenseFilter narrows ListExpenses. Start and End bound the date column
// inclusively; Category matches exactly.
type ExpenseFilter struct {
	Start    *time.Time
	End      *time.Time
	Category *models.Category
}

func ListExpenses(ctx context.Context, pool *pgxpool.Pool, userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses WHERE user_id = $1
	`
	args := []interface{}{userID}

	if filter.Start != nil && filter.End != nil {
		query += ` AND date >= $2 AND date <= $3`
		args = append(args, *filter.Start, *filter.End)
	}
	if filter.Category != nil {
		query += ` AND category = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filter.Category)
	}
	query += ` ORDER BY date DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func UpdateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	query := `
		UPDATE expenses
		SET amount = $1, category = $2, description = $3, date = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING ` + expenseColumns
	return scanExpense(pool.QueryRow(ctx, query,
		expense.Amount, expense.Category, expense.Description, expense.Date, expense.ID, expense.UserID))
}

func DeleteExpense(ctx context.Context, pool *pgxpool.Pool, userID, expenseID uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, expenseID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ExpensesInRange returns a user's expenses inside [start, end], oldest
// first. The summary engine depends on this ordering.
func ExpensesInRange(ctx context.Context, pool *pgxpool.Pool, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	rows, err := pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}
