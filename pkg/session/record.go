package session

import (
	"time"

	"github.com/google/uuid"
)

// Record is the validated shape of a session. All fields are immutable for
// the session's lifetime; the store only performs whole-record overwrites
// keyed by ID.
type Record struct {
	ID          string    `json:"session_id"`
	Fingerprint string    `json:"fingerprint"`
	UserID      uuid.UUID `json:"user_id"`
	IssuedAt    time.Time `json:"issued_at"`
}

// NewRecord creates a session record with a fresh random identifier.
func NewRecord(fp string, userID uuid.UUID) Record {
	return Record{
		ID:          uuid.NewString(),
		Fingerprint: fp,
		UserID:      userID,
		IssuedAt:    time.Now().UTC(),
	}
}

// Validate rejects records with an empty identifier or fingerprint. This is
// a defensive invariant checked before every persistence attempt; it is not
// expected to trigger in normal operation.
func (r Record) Validate() error {
	if r.ID == "" || r.Fingerprint == "" {
		return ErrInvalidRecord
	}
	return nil
}
