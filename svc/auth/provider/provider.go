// Package provider abstracts identity verification behind small interfaces
// so the auth service stays agnostic of where credentials are checked.
// Implementations encapsulate all protocol details and return a normalized
// Identity; the auth service owns everything that happens after a successful
// verification (user upsert, device audit, session issuance).
package provider

import (
	"context"
	"errors"
)

// Provider names used for storage and logging.
const (
	NameSupabase = "supabase"
	NameGithub   = "github"
	NameLocal    = "local"
)

var (
	// ErrInvalidCredentials covers every sign-in failure uniformly to
	// prevent user enumeration.
	ErrInvalidCredentials = errors.New("provider.invalid_credentials")
	ErrEmailTaken         = errors.New("provider.email_taken")
	ErrInvalidCode        = errors.New("provider.invalid_authorization_code")
	ErrNoVerifiedEmail    = errors.New("provider.no_verified_email")
	ErrUnavailable        = errors.New("provider.unavailable")
)

// Identity is the normalized result of a successful verification.
type Identity struct {
	// ProviderUID is the provider's stable user identifier. Numeric ids are
	// converted to strings.
	ProviderUID string
	Email       string
	Name        string
	AvatarURL   string
}

// Provider verifies email/password credentials.
type Provider interface {
	// Name returns a stable provider identifier, e.g. "supabase".
	Name() string

	// SignUp registers new credentials. Returns ErrEmailTaken when the
	// email is already registered.
	SignUp(ctx context.Context, email, password string) (Identity, error)

	// SignIn verifies credentials. Any failure maps to
	// ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// OAuthProvider implements the authorization-code flow for an external
// identity provider.
type OAuthProvider interface {
	Name() string

	// AuthURL builds the provider authorization URL for the given state
	// token.
	AuthURL(state string) string

	// ResolveIdentity exchanges the authorization code and fetches the
	// user's profile. Exchange failures map to ErrInvalidCode; a profile
	// without a usable email maps to ErrNoVerifiedEmail.
	ResolveIdentity(ctx context.Context, code string) (Identity, error)
}
