package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pocketa-server/src/models"
)

// GetOrCreateUserBySubject resolves the identity provider's subject id to
// a local user, creating the row on first sight and keeping email fresh.
func GetOrCreateUserBySubject(ctx context.Context, pool *pgxpool.Pool, subject, email string) (*models.User, error) {
	query := `
		INSERT INTO users (subject, email)
		VALUES ($1, $2)
		ON CONFLICT (subject) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, subject, email, created_at
	`
	var user models.User
	err := pool.QueryRow(ctx, query, subject, email).
		Scan(&user.ID, &user.Subject, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
