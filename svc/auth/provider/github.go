package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GithubConfig holds the GitHub OAuth application settings.
type GithubConfig struct {
	ClientID     string   `env:"GITHUB_CLIENT_ID,required"`
	ClientSecret string   `env:"GITHUB_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GITHUB_REDIRECT_URL,required"`
	Scopes       []string `env:"GITHUB_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
}

// Github implements the authorization-code flow against GitHub.
type Github struct {
	conf       *oauth2.Config
	apiBase    string
	httpClient *http.Client
}

// NewGithub creates a GitHub OAuth provider.
func NewGithub(cfg GithubConfig) *Github {
	return &Github{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		apiBase:    "https://api.github.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Github) Name() string { return NameGithub }

// AuthURL builds the GitHub authorization URL with the given state token.
func (p *Github) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// ResolveIdentity exchanges the code, then reads /user and /user/emails.
// The emails endpoint is always consulted because /user only exposes the
// public email, which may be absent or unverified.
func (p *Github) ResolveIdentity(ctx context.Context, code string) (Identity, error) {
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return Identity{}, ErrInvalidCode
	}

	var user struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := p.get(ctx, tok.AccessToken, "/user", &user); err != nil {
		return Identity{}, err
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := p.get(ctx, tok.AccessToken, "/user/emails", &emails); err != nil {
		return Identity{}, err
	}

	var email string
	for _, e := range emails {
		if e.Primary && e.Verified {
			email = e.Email
			break
		}
	}
	if email == "" {
		for _, e := range emails {
			if e.Verified {
				email = e.Email
				break
			}
		}
	}
	if email == "" {
		return Identity{}, ErrNoVerifiedEmail
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return Identity{
		ProviderUID: strconv.FormatInt(user.ID, 10),
		Email:       email,
		Name:        name,
		AvatarURL:   user.AvatarURL,
	}, nil
}

func (p *Github) get(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: github api returned status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return nil
}

var _ OAuthProvider = (*Github)(nil)
