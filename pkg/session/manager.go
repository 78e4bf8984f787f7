package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authflow/pkg/fingerprint"
)

// FingerprintFunc derives a device fingerprint from the request. It exists
// as an injection point so tests can force failures; production code uses
// fingerprint.FromRequest.
type FingerprintFunc func(r *http.Request) string

// Manager drives session issuance and teardown for the auth service. The
// verification gateway reads the same Store but never goes through the
// Manager.
type Manager struct {
	store Store
	fp    FingerprintFunc
	log   *slog.Logger
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, log *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		fp:    fingerprint.FromRequest,
		log:   log,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	return m
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithFingerprintFunc overrides the fingerprint derivation. Nil values are
// ignored.
func WithFingerprintFunc(fn FingerprintFunc) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.fp = fn
		}
	}
}

// Create issues a new session for the user from the authenticated request:
// device fingerprint from the issuing request, fresh random identifier,
// validation, then persistence. The caller is responsible for placing the
// returned identifier into a response cookie.
//
// On any failure no partial session is reachable: the record is either fully
// saved or not saved at all.
func (m *Manager) Create(ctx context.Context, r *http.Request, userID uuid.UUID) (Record, error) {
	fp := m.fp(r)
	if fp == "" {
		return Record{}, ErrFingerprint
	}

	rec := NewRecord(fp, userID)
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}

	if err := m.store.Save(ctx, rec); err != nil {
		return Record{}, err
	}

	m.log.InfoContext(ctx, "session issued",
		"session_id", rec.ID,
		"user_id", rec.UserID,
		"fingerprint_prefix", fp[:min(len(fp), 12)],
	)
	return rec, nil
}

// Destroy deletes the session record. Idempotent; destroying an unknown or
// already-expired identifier succeeds.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "session destroyed", "session_id", id)
	return nil
}

// Ping reports whether the backing store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
