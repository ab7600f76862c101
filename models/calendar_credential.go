package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarCredential stores the Google OAuth token tuple for a professional
// who connected their calendar. Tokens are refreshed lazily on read.
type CalendarCredential struct {
	ProfessionalID uuid.UUID `json:"professional_id" gorm:"type:uuid;primaryKey"`
	AccessToken    string    `json:"-"`
	RefreshToken   string    `json:"-"`
	Expiry         time.Time `json:"expiry"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Expired reports whether the access token has passed its expiry and needs a
// refresh before use.
func (c *CalendarCredential) Expired() bool {
	return !c.Expiry.IsZero() && c.Expiry.Before(time.Now())
}
