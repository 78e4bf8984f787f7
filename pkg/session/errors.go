package session

import "errors"

var (
	// ErrNotFound indicates no session exists for the identifier, either
	// because it never existed or because the store expired it. Callers must
	// treat both cases uniformly.
	ErrNotFound = errors.New("session.not_found")

	// ErrInvalidRecord indicates a record failed validation (empty session
	// identifier or fingerprint) before persistence.
	ErrInvalidRecord = errors.New("session.invalid_record")

	// ErrStore indicates the backing store failed or returned data that
	// could not be decoded into a record.
	ErrStore = errors.New("session.store_failure")

	// ErrFingerprint indicates device fingerprint computation failed during
	// issuance.
	ErrFingerprint = errors.New("session.fingerprint_failure")
)
