package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"pocketa-server/src/summary"
	"pocketa-server/src/util"
)

func GetDailySummary(engine *summary.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)

		date := time.Now()
		if dateParam := r.URL.Query().Get("date"); dateParam != "" {
			parsed, err := util.ParseDate(dateParam)
			if err != nil {
				util.WriteError(w, util.NewValidationError("Invalid date format"))
				return
			}
			date = parsed
		}

		result, err := engine.Daily(r.Context(), userID, date)
		if err != nil {
			log.Printf("ERROR: Failed to compute daily summary for user %s: %v", userID, err)
			util.WriteError(w, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, result)
	}
}

func GetWeeklySummary(engine *summary.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		q := r.URL.Query()

		var start, end time.Time
		if q.Get("startDate") != "" && q.Get("endDate") != "" {
			var err error
			start, end, err = util.ValidateDateRange(q.Get("startDate"), q.Get("endDate"))
			if err != nil {
				util.WriteError(w, err)
				return
			}
		} else {
			start, end = summary.CurrentWeekWindow(time.Now())
		}

		result, err := engine.Weekly(r.Context(), userID, start, end)
		if err != nil {
			log.Printf("ERROR: Failed to compute weekly summary for user %s: %v", userID, err)
			util.WriteError(w, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, result)
	}
}

func GetMonthlySummary(engine *summary.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		q := r.URL.Query()

		now := time.Now()
		year := now.Year()
		month := int(now.Month())

		if yearParam := q.Get("year"); yearParam != "" {
			y, err := strconv.Atoi(yearParam)
			if err != nil {
				util.WriteError(w, util.NewValidationError("Invalid year"))
				return
			}
			year = y
		}
		if monthParam := q.Get("month"); monthParam != "" {
			m, err := strconv.Atoi(monthParam)
			if err != nil {
				util.WriteError(w, util.NewValidationError("Invalid month"))
				return
			}
			month = m
		}
		if month < 1 || month > 12 {
			util.WriteError(w, util.NewValidationError("Month must be between 1 and 12"))
			return
		}

		result, err := engine.Monthly(r.Context(), userID, year, month)
		if err != nil {
			log.Printf("ERROR: Failed to compute monthly summary for user %s: %v", userID, err)
			util.WriteError(w, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, result)
	}
}
