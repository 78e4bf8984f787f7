package session

import "time"

// Config holds session configuration shared by issuance and verification.
type Config struct {
	// CookieName is the name of the session-identifying cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// TTL is the fixed expiry window applied on every store write. The 60s
	// default is deliberately short; production deployments are expected to
	// raise it explicitly.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"60s"`

	// RefreshOnRead makes the verification gateway re-save the record after
	// a successful fingerprint match, restarting the TTL window on activity.
	// Off by default: then a session expires TTL after its last write,
	// independent of read traffic.
	RefreshOnRead bool `env:"SESSION_REFRESH_ON_READ" envDefault:"false"`

	// KeyPrefix namespaces session keys in the shared store.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "session_id",
		TTL:           60 * time.Second,
		RefreshOnRead: false,
		KeyPrefix:     "session:",
	}
}
