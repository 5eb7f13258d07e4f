package util

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// AppError carries an HTTP status alongside a client-facing message.
// Handlers raise these locally and WriteError translates them 1:1 at the
// boundary; anything else becomes a generic 500.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: resource + " not found"}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

// WriteError translates err into a JSON error response.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Code, map[string]string{"error": appErr.Message})
		return
	}
	log.Printf("ERROR: Unhandled error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
