package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a local record for an identity established by the external
// identity provider. Subject is the provider's stable subject id.
type User struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
