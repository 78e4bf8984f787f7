package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authflow/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setCookieOnRequest(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_PlainCookies(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.New(nil)
	require.NoError(t, err)

	t.Run("set and get round trip", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mgr.Set(rec, "session_id", "abc-123")

		r := setCookieOnRequest(t, rec)
		got, err := mgr.Get(r, "session_id")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", got)
	})

	t.Run("missing cookie returns sentinel", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := mgr.Get(r, "session_id")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("default attributes applied", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mgr.Set(rec, "session_id", "v")

		header := rec.Header().Get("Set-Cookie")
		assert.Contains(t, header, "Path=/")
		assert.Contains(t, header, "HttpOnly")
		assert.Contains(t, header, "SameSite=Lax")
	})

	t.Run("delete expires the cookie", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mgr.Delete(rec, "session_id")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("signed methods require a secret", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		assert.ErrorIs(t, mgr.SetSigned(rec, "n", "v"), cookie.ErrNoSecret)
	})
}

func TestManager_SignedCookies(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	t.Run("signed round trip", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, mgr.SetSigned(rec, "session_id", "abc-123"))

		r := setCookieOnRequest(t, rec)
		got, err := mgr.GetSigned(r, "session_id")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", got)
	})

	t.Run("tampered value is rejected", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, mgr.SetSigned(rec, "session_id", "abc-123"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		c := rec.Result().Cookies()[0]
		c.Value = strings.Replace(c.Value, c.Value[:4], "AAAA", 1)
		r.AddCookie(c)

		_, err := mgr.GetSigned(r, "session_id")
		assert.Error(t, err)
	})

	t.Run("old secret remains valid during rotation", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, mgr.SetSigned(rec, "session_id", "abc-123"))

		rotated, err := cookie.New([]string{"ffffffffffffffffffffffffffffffff", testSecret})
		require.NoError(t, err)

		r := setCookieOnRequest(t, rec)
		got, err := rotated.GetSigned(r, "session_id")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", got)
	})
}

func TestNew_SecretValidation(t *testing.T) {
	t.Parallel()

	_, err := cookie.New([]string{"too-short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	// Empty secrets are filtered, leaving a plain-only manager.
	mgr, err := cookie.New([]string{""})
	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  testSecret + ", ",
		Path:     "/app",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.Set(rec, "session_id", "v")

	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Path=/app")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Strict")
}
