package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SupabaseConfig holds connection settings for a Supabase GoTrue instance.
type SupabaseConfig struct {
	URL     string        `env:"SUPABASE_URL,required"`
	AnonKey string        `env:"SUPABASE_ANON_KEY,required"`
	Timeout time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"10s"`
}

// Supabase verifies credentials against the GoTrue REST API.
type Supabase struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewSupabase creates a Supabase credential provider.
func NewSupabase(cfg SupabaseConfig) *Supabase {
	return &Supabase{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *Supabase) Name() string { return NameSupabase }

// SignUp registers credentials via POST /auth/v1/signup.
func (p *Supabase) SignUp(ctx context.Context, email, password string) (Identity, error) {
	var body struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	}

	status, err := p.post(ctx, "/auth/v1/signup", email, password, &body)
	if err != nil {
		return Identity{}, err
	}
	switch {
	case status == http.StatusUnprocessableEntity:
		return Identity{}, ErrEmailTaken
	case status != http.StatusOK:
		return Identity{}, fmt.Errorf("%w: signup returned status %d", ErrUnavailable, status)
	}

	return Identity{
		ProviderUID: body.ID,
		Email:       body.Email,
		Name:        body.UserMetadata.Name,
		AvatarURL:   body.UserMetadata.AvatarURL,
	}, nil
}

// SignIn verifies credentials via the password grant. GoTrue answers 400 for
// wrong credentials; anything but 200 maps to the uniform credentials error
// so callers cannot distinguish failure causes.
func (p *Supabase) SignIn(ctx context.Context, email, password string) (Identity, error) {
	var body struct {
		User struct {
			ID           string `json:"id"`
			Email        string `json:"email"`
			UserMetadata struct {
				Name      string `json:"name"`
				AvatarURL string `json:"avatar_url"`
			} `json:"user_metadata"`
		} `json:"user"`
	}

	status, err := p.post(ctx, "/auth/v1/token?grant_type=password", email, password, &body)
	if err != nil {
		return Identity{}, err
	}
	if status != http.StatusOK {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{
		ProviderUID: body.User.ID,
		Email:       body.User.Email,
		Name:        body.User.UserMetadata.Name,
		AvatarURL:   body.User.UserMetadata.AvatarURL,
	}, nil
}

func (p *Supabase) post(ctx context.Context, path, email, password string, out any) (int, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.anonKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
		}
	}
	return resp.StatusCode, nil
}

var _ Provider = (*Supabase)(nil)
