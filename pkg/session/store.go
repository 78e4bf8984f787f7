package session

import "context"

// Store is the expiring key-value backend holding session records.
// Operations are independent per key; concurrent writers to the same
// identifier race last-write-wins, which is acceptable because identifiers
// are never reissued.
type Store interface {
	// Save persists the record under its identifier with the store's fixed
	// TTL, overwriting any existing entry. Every save restarts the full
	// expiry window.
	Save(ctx context.Context, rec Record) error

	// Fetch returns the record for the identifier, or ErrNotFound when the
	// key is absent or expired. The sentinel is always distinguishable from
	// a record whose fields happen to be empty.
	Fetch(ctx context.Context, id string) (Record, error)

	// Delete removes the record. Idempotent: deleting a missing identifier
	// succeeds.
	Delete(ctx context.Context, id string) error

	// Ping probes store liveness. For startup and health checks only, never
	// on the request verification path.
	Ping(ctx context.Context) error
}
