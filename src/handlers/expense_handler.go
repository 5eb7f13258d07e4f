package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbsql "pocketa-server/src/db/sql"
	"pocketa-server/src/models"
	"pocketa-server/src/util"
)

type expenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

func CreateExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)

		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create expense request for user %s: %v", userID, err)
			util.WriteError(w, util.NewValidationError("Invalid request body"))
			return
		}

		if req.Amount == nil {
			util.WriteError(w, util.NewValidationError("Amount must be a positive number"))
			return
		}
		if req.Category == nil {
			util.WriteError(w, util.NewValidationError("Category is required"))
			return
		}
		if err := util.ValidateExpense(req.Amount, req.Category, req.Date); err != nil {
			util.WriteError(w, err)
			return
		}

		date := time.Now()
		if req.Date != nil {
			date, _ = util.ParseDate(*req.Date)
		}

		expense := &models.Expense{
			UserID:      userID,
			Amount:      *req.Amount,
			Category:    models.Category(*req.Category),
			Description: req.Description,
			Date:        date,
		}
		created, err := dbsql.CreateExpense(r.Context(), pool, expense)
		if err != nil {
			log.Printf("ERROR: Failed to create expense for user %s: %v", userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Created expense %s for user %s, category %s", created.ID, userID, created.Category)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetExpenses(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		q := r.URL.Query()

		var filter dbsql.ExpenseFilter

		if dateParam := q.Get("date"); dateParam != "" {
			date, err := util.ParseDate(dateParam)
			if err != nil {
				util.WriteError(w, util.NewValidationError("Invalid date format"))
				return
			}
			start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
			end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, time.Local)
			filter.Start, filter.End = &start, &end
		} else if q.Get("startDate") != "" && q.Get("endDate") != "" {
			start, end, err := util.ValidateDateRange(q.Get("startDate"), q.Get("endDate"))
			if err != nil {
				util.WriteError(w, err)
				return
			}
			filter.Start, filter.End = &start, &end
		}

		if categoryParam := q.Get("category"); categoryParam != "" {
			category := models.Category(categoryParam)
			if !category.IsValid() {
				util.WriteError(w, util.NewValidationError("Invalid category filter"))
				return
			}
			filter.Category = &category
		}

		expenses, err := dbsql.ListExpenses(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to list expenses for user %s: %v", userID, err)
			util.WriteError(w, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, expenses)
	}
}

func GetExpenseByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		expenseID, err := uuid.Parse(chi.URLParam(r, "expense_id"))
		if err != nil {
			util.WriteError(w, util.NewNotFoundError("Expense"))
			return
		}

		expense, err := dbsql.GetExpenseByID(r.Context(), pool, userID, expenseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NewNotFoundError("Expense"))
				return
			}
			log.Printf("ERROR: Failed to get expense %s for user %s: %v", expenseID, userID, err)
			util.WriteError(w, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, expense)
	}
}

func UpdateExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		expenseID, err := uuid.Parse(chi.URLParam(r, "expense_id"))
		if err != nil {
			util.WriteError(w, util.NewNotFoundError("Expense"))
			return
		}

		existing, err := dbsql.GetExpenseByID(r.Context(), pool, userID, expenseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NewNotFoundError("Expense"))
				return
			}
			log.Printf("ERROR: Failed to get expense %s for user %s: %v", expenseID, userID, err)
			util.WriteError(w, err)
			return
		}

		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update expense request for user %s: %v", userID, err)
			util.WriteError(w, util.NewValidationError("Invalid request body"))
			return
		}

		if err := util.ValidateExpense(req.Amount, req.Category, req.Date); err != nil {
			util.WriteError(w, err)
			return
		}

		// Partial update: only fields present in the request change.
		if req.Amount != nil {
			existing.Amount = *req.Amount
		}
		if req.Category != nil {
			existing.Category = models.Category(*req.Category)
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.Date != nil {
			date, _ := util.ParseDate(*req.Date)
			existing.Date = date
		}

		updated, err := dbsql.UpdateExpense(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update expense %s for user %s: %v", expenseID, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Updated expense %s for user %s", updated.ID, userID)
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		expenseID, err := uuid.Parse(chi.URLParam(r, "expense_id"))
		if err != nil {
			util.WriteError(w, util.NewNotFoundError("Expense"))
			return
		}

		if err := dbsql.DeleteExpense(r.Context(), pool, userID, expenseID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				util.WriteError(w, util.NewNotFoundError("Expense"))
				return
			}
			log.Printf("ERROR: Failed to delete expense %s for user %s: %v", expenseID, userID, err)
			util.WriteError(w, err)
			return
		}

		log.Printf("INFO: Deleted expense %s for user %s", expenseID, userID)
		w.WriteHeader(http.StatusNoContent)
	}
}
