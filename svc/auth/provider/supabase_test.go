package provider_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authflow/svc/auth/provider"
)

func newSupabase(t *testing.T, handler http.Handler) *provider.Supabase {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return provider.NewSupabase(provider.SupabaseConfig{
		URL:     srv.URL,
		AnonKey: "anon-key",
		Timeout: 5 * time.Second,
	})
}

func TestSupabase_SignIn(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		p := newSupabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "anon-key", r.Header.Get("apikey"))

			var creds map[string]string
			if assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds)) {
				assert.Equal(t, "user@example.com", creds["email"])
			}

			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "jwt",
				"user": map[string]any{
					"id":    "b2f0c9e4-0000-0000-0000-000000000042",
					"email": "user@example.com",
					"user_metadata": map[string]any{
						"name":       "Test User",
						"avatar_url": "https://example.com/a.png",
					},
				},
			})
		}))

		id, err := p.SignIn(t.Context(), "user@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "b2f0c9e4-0000-0000-0000-000000000042", id.ProviderUID)
		assert.Equal(t, "user@example.com", id.Email)
		assert.Equal(t, "Test User", id.Name)
	})

	t.Run("wrong credentials map to the uniform error", func(t *testing.T) {
		t.Parallel()

		p := newSupabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))

		_, err := p.SignIn(t.Context(), "user@example.com", "wrong")
		assert.ErrorIs(t, err, provider.ErrInvalidCredentials)
	})
}

func TestSupabase_SignUp(t *testing.T) {
	t.Parallel()

	t.Run("new account", func(t *testing.T) {
		t.Parallel()

		p := newSupabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    "b2f0c9e4-0000-0000-0000-000000000042",
				"email": "user@example.com",
			})
		}))

		id, err := p.SignUp(t.Context(), "user@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "b2f0c9e4-0000-0000-0000-000000000042", id.ProviderUID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		p := newSupabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"msg":"User already registered"}`, http.StatusUnprocessableEntity)
		}))

		_, err := p.SignUp(t.Context(), "user@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, provider.ErrEmailTaken)
	})

	t.Run("upstream outage", func(t *testing.T) {
		t.Parallel()

		p := newSupabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
		}))

		_, err := p.SignUp(t.Context(), "user@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, provider.ErrUnavailable)
	})
}
