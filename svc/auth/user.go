package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the local account linked to a provider identity. The pair
// (provider, provider_uid) is the stable external key; the local id is what
// sessions carry.
type User struct {
	ID          uuid.UUID
	Provider    string
	ProviderUID string
	Email       string
	Name        string
	AvatarURL   string
	CreatedAt   time.Time
}

// Device is the audit row recorded for every successful sign-in. It captures
// the raw request attributes the fingerprint was derived from.
type Device struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	IP             string
	UserAgent      string
	AcceptLanguage string
	CreatedAt      time.Time
}
