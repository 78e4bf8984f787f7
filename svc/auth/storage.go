package auth

import "context"

// Storage persists the outcome of a successful identity verification. A
// single call covers both the user upsert and the device audit row so
// implementations can make them atomic.
type Storage interface {
	// SaveSignIn upserts the user keyed by (provider, provider_uid),
	// refreshing mutable profile fields, and records the device row against
	// the resulting user id. Returns the stored user with its local id.
	SaveSignIn(ctx context.Context, user User, device Device) (User, error)
}
