package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pocketa-server/src/db"
	dbsql "pocketa-server/src/db/sql"
	"pocketa-server/src/util"
)

// ParseTokenFromRequest extracts and validates the identity provider's
// bearer token, returning its claims if valid.
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// AuthMiddleware verifies the bearer token, resolves the subject to a
// local user (creating one on first sight), and injects the identity into
// the request context.
func AuthMiddleware(pool *pgxpool.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseTokenFromRequest(r)
			if err != nil {
				util.WriteError(w, util.NewUnauthorizedError("Unauthorized: "+err.Error()))
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				util.WriteError(w, util.NewUnauthorizedError("Unauthorized: token has no subject"))
				return
			}
			email, _ := claims["email"].(string)

			user, cached := db.GetUserCache(subject)
			if !cached {
				user, err = dbsql.GetOrCreateUserBySubject(r.Context(), pool, subject, email)
				if err != nil {
					log.Printf("ERROR: Failed to resolve user for subject %s: %v", subject, err)
					util.WriteError(w, util.NewUnauthorizedError("Unauthorized: invalid token"))
					return
				}
				db.SetUserCache(subject, user)
			}

			ctx := context.WithValue(r.Context(), "user_id", user.ID)
			ctx = context.WithValue(ctx, "subject", user.Subject)
			ctx = context.WithValue(ctx, "email", user.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
