package guard

import "strings"

// Config holds verification gateway configuration.
type Config struct {
	// AuthURL is the absolute URL of the authentication entry point. Every
	// denial redirects here.
	AuthURL string `env:"GUARD_AUTH_URL,required"`

	// ExemptPaths lists request paths forwarded without any session check,
	// compared by exact match. The defaults mirror the bootstrap set: the
	// auth entry point itself must stay reachable or denied clients could
	// never re-authenticate.
	ExemptPaths []string `env:"GUARD_EXEMPT_PATHS" envDefault:"/,/health,/health/,/auth,/verified,/docs"`
}

// DefaultConfig returns the default gateway configuration with the given
// auth entry point.
func DefaultConfig(authURL string) Config {
	return Config{
		AuthURL:     authURL,
		ExemptPaths: []string{"/", "/health", "/health/", "/auth", "/verified", "/docs"},
	}
}

// exemptSet builds the lookup set used on the hot path.
func (c Config) exemptSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.ExemptPaths))
	for _, p := range c.ExemptPaths {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}
