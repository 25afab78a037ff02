package sharing

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a principal known to the server: a data provider or a
// recipient. Accounts are created through social login and addressed by
// their unique name.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Image          string    `json:"image,omitempty"`
	SocialPlatform string    `json:"social_platform"`
	SocialID       string    `json:"social_id"`
	SocialName     string    `json:"social_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Token is the persisted record of an issued bearer token. Value holds the
// opaque wire form; the server never needs to decode it back.
type Token struct {
	ID         uuid.UUID `json:"id"`
	Value      string    `json:"value"`
	Active     bool      `json:"active"`
	CreatedBy  uuid.UUID `json:"created_by"`
	CreatedFor uuid.UUID `json:"created_for"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
