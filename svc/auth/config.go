package auth

import "time"

// Config holds auth service settings.
type Config struct {
	// VerifiedURL is where clients land after a successful sign-in, usually
	// a page on the verify service.
	VerifiedURL string `env:"AUTH_VERIFIED_URL" envDefault:"/verified"`

	// LogoutURL is where clients land after logout.
	LogoutURL string `env:"AUTH_LOGOUT_URL" envDefault:"/"`

	// StateTTL bounds how long an OAuth state token stays redeemable.
	StateTTL time.Duration `env:"AUTH_OAUTH_STATE_TTL" envDefault:"10m"`
}

// DefaultConfig returns the default auth service configuration.
func DefaultConfig() Config {
	return Config{
		VerifiedURL: "/verified",
		LogoutURL:   "/",
		StateTTL:    10 * time.Minute,
	}
}
