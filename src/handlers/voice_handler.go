package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"pocketa-server/src/models"
	"pocketa-server/src/util"
)

// VoiceParser is implemented by parser.Parser. It never fails; total
// parse failure degrades to a zero-amount "other" result.
type VoiceParser interface {
	Parse(ctx context.Context, text string) models.ParsedExpense
}

func ParseVoiceInput(p VoiceParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text *string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode voice parse request: %v", err)
			util.WriteError(w, util.NewValidationError("Text input is required"))
			return
		}
		if req.Text == nil {
			util.WriteError(w, util.NewValidationError("Text input is required"))
			return
		}

		parsed := p.Parse(r.Context(), *req.Text)
		util.WriteJSON(w, http.StatusOK, parsed)
	}
}
