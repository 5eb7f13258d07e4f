package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pocketa-server/src/handlers"
	"pocketa-server/src/middleware"
	"pocketa-server/src/summary"
)

func NewRouter(pool *pgxpool.Pool, engine *summary.Engine, voiceParser handlers.VoiceParser, allowedOrigins []string, isDemo bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.DemoModeMiddleware(isDemo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", handlers.GetCategories())

		// Protected routes
		r.With(middleware.AuthMiddleware(pool)).Group(func(r chi.Router) {
			r.Post("/auth/verify", handlers.VerifyToken())

			// Expenses
			r.Post("/expenses", handlers.CreateExpense(pool))
			r.Get("/expenses", handlers.GetExpenses(pool))
			r.Get("/expenses/{expense_id}", handlers.GetExpenseByID(pool))
			r.Put("/expenses/{expense_id}", handlers.UpdateExpense(pool))
			r.Delete("/expenses/{expense_id}", handlers.DeleteExpense(pool))

			// Summaries
			r.Get("/summary/daily", handlers.GetDailySummary(engine))
			r.Get("/summary/weekly", handlers.GetWeeklySummary(engine))
			r.Get("/summary/monthly", handlers.GetMonthlySummary(engine))

			// Voice
			r.Post("/voice/parse", handlers.ParseVoiceInput(voiceParser))
		})
	})

	return r
}
