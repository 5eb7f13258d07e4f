package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"pocketa-server/src/util"
)

// VerifyToken echoes the identity the auth middleware resolved. Clients
// call it after sign-in to confirm the token and learn their user id.
func VerifyToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(uuid.UUID)
		subject, _ := r.Context().Value("subject").(string)
		email, _ := r.Context().Value("email").(string)

		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user": map[string]string{
				"user_id": userID.String(),
				"subject": subject,
				"email":   email,
			},
		})
	}
}
