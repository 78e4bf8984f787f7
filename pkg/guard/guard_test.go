package guard_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authflow/pkg/cookie"
	"github.com/dmitrymomot/authflow/pkg/fingerprint"
	"github.com/dmitrymomot/authflow/pkg/guard"
	"github.com/dmitrymomot/authflow/pkg/session"
)

const authURL = "http://auth.local/auth"

func newGuard(t *testing.T, store session.Store, sessCfg session.Config) *guard.Guard {
	t.Helper()

	cookies, err := cookie.New(nil)
	require.NoError(t, err)

	return guard.New(store, cookies, guard.DefaultConfig(authURL), sessCfg, slog.New(slog.DiscardHandler))
}

// gatedRequest builds a request carrying the given session cookie from the
// given client address. The header set matches the one used at issuance so
// fingerprints line up unless the test changes a field.
func gatedRequest(sessionID, remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.RemoteAddr = remoteAddr
	r.Header.Set("User-Agent", "Mozilla/5.0 TestAgent")
	r.Header.Set("Accept-Language", "en-US")
	if sessionID != "" {
		r.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	}
	return r
}

// issueSession saves a record whose fingerprint matches requests built by
// gatedRequest from the given address.
func issueSession(t *testing.T, store session.Store, remoteAddr string) session.Record {
	t.Helper()

	rec := session.NewRecord(fingerprint.FromRequest(gatedRequest("", remoteAddr)), uuid.New())
	require.NoError(t, store.Save(t.Context(), rec))
	return rec
}

// serve runs the request through the gateway in front of a handler that
// reports whether it was reached and captures the verified record.
func serve(g *guard.Guard, r *http.Request) (*httptest.ResponseRecorder, bool, session.Record) {
	var (
		reached bool
		rec     session.Record
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		rec, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	g.Middleware(next).ServeHTTP(w, r)
	return w, reached, rec
}

func assertDenied(t *testing.T, w *httptest.ResponseRecorder, reached bool) {
	t.Helper()
	assert.False(t, reached, "denied request must not reach the downstream handler")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, authURL, w.Header().Get("Location"))
}

func TestGuard_ValidSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Minute)
	g := newGuard(t, store, session.DefaultConfig())
	rec := issueSession(t, store, "10.0.0.1:50000")

	w, reached, got := serve(g, gatedRequest(rec.ID, "10.0.0.1:50000"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Equal(t, rec, got, "the verified record should reach the handler via context")
}

func TestGuard_MissingCookie(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Minute)
	g := newGuard(t, store, session.DefaultConfig())

	w, reached, _ := serve(g, gatedRequest("", "10.0.0.1:50000"))
	assertDenied(t, w, reached)
}

func TestGuard_UnknownSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Minute)
	g := newGuard(t, store, session.DefaultConfig())

	w, reached, _ := serve(g, gatedRequest(uuid.NewString(), "10.0.0.1:50000"))
	assertDenied(t, w, reached)
}

func TestGuard_ExpiredSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(60 * time.Second)
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	g := newGuard(t, store, session.DefaultConfig())
	rec := issueSession(t, store, "10.0.0.1:50000")

	now = now.Add(61 * time.Second)

	w, reached, _ := serve(g, gatedRequest(rec.ID, "10.0.0.1:50000"))
	assertDenied(t, w, reached)
}

func TestGuard_FingerprintMismatch(t *testing.T) {
	t.Parallel()

	t.Run("different client address", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(time.Minute)
		g := newGuard(t, store, session.DefaultConfig())
		rec := issueSession(t, store, "10.0.0.1:50000")

		// Same cookie replayed from another machine.
		w, reached, _ := serve(g, gatedRequest(rec.ID, "10.0.0.2:50000"))
		assertDenied(t, w, reached)

		// The record itself survives; only this request is denied.
		_, err := store.Fetch(t.Context(), rec.ID)
		assert.NoError(t, err)
	})

	t.Run("different user agent", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(time.Minute)
		g := newGuard(t, store, session.DefaultConfig())
		rec := issueSession(t, store, "10.0.0.1:50000")

		r := gatedRequest(rec.ID, "10.0.0.1:50000")
		r.Header.Set("User-Agent", "curl/8.0")

		w, reached, _ := serve(g, r)
		assertDenied(t, w, reached)
	})
}

func TestGuard_ExemptPaths(t *testing.T) {
	t.Parallel()

	// A store that fails everything proves exempt requests never touch it.
	g := newGuard(t, &explodingStore{}, session.DefaultConfig())

	for _, path := range []string{"/", "/health", "/auth", "/verified"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r.RemoteAddr = "10.0.0.1:50000"

		w, reached, _ := serve(g, r)
		assert.Equal(t, http.StatusOK, w.Code, "path %s should bypass verification", path)
		assert.True(t, reached)
	}

	// Exemption is exact match, not prefix match.
	w, reached, _ := serve(g, gatedRequest("", "10.0.0.1:50000"))
	assertDenied(t, w, reached)
}

func TestGuard_StoreFailure(t *testing.T) {
	t.Parallel()

	g := newGuard(t, &explodingStore{err: errors.New("redis: connection refused")}, session.DefaultConfig())

	w, reached, _ := serve(g, gatedRequest(uuid.NewString(), "10.0.0.1:50000"))
	assertDenied(t, w, reached)
}

func TestGuard_PanicDuringVerification(t *testing.T) {
	t.Parallel()

	g := newGuard(t, &explodingStore{}, session.DefaultConfig())

	w, reached, _ := serve(g, gatedRequest(uuid.NewString(), "10.0.0.1:50000"))
	assertDenied(t, w, reached)
}

func TestGuard_DenialsLookIdentical(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Minute)
	g := newGuard(t, store, session.DefaultConfig())
	rec := issueSession(t, store, "10.0.0.1:50000")

	requests := map[string]*http.Request{
		"missing cookie":       gatedRequest("", "10.0.0.1:50000"),
		"unknown session":      gatedRequest(uuid.NewString(), "10.0.0.1:50000"),
		"fingerprint mismatch": gatedRequest(rec.ID, "10.0.0.2:50000"),
	}

	for name, r := range requests {
		w, _, _ := serve(g, r)
		assert.Equal(t, http.StatusFound, w.Code, name)
		assert.Equal(t, authURL, w.Header().Get("Location"), name)
	}
}

func TestGuard_RefreshOnRead(t *testing.T) {
	t.Parallel()

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(60 * time.Second)
		now := time.Now()
		store.SetClock(func() time.Time { return now })

		g := newGuard(t, store, session.DefaultConfig())
		rec := issueSession(t, store, "10.0.0.1:50000")

		now = now.Add(45 * time.Second)
		_, reached, _ := serve(g, gatedRequest(rec.ID, "10.0.0.1:50000"))
		require.True(t, reached)

		// The read above did not slide the window.
		now = now.Add(30 * time.Second)
		w, reached, _ := serve(g, gatedRequest(rec.ID, "10.0.0.1:50000"))
		assertDenied(t, w, reached)
	})

	t.Run("enabled restarts the window on verified requests", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(60 * time.Second)
		now := time.Now()
		store.SetClock(func() time.Time { return now })

		cfg := session.DefaultConfig()
		cfg.RefreshOnRead = true
		g := newGuard(t, store, cfg)
		rec := issueSession(t, store, "10.0.0.1:50000")

		now = now.Add(45 * time.Second)
		_, reached, _ := serve(g, gatedRequest(rec.ID, "10.0.0.1:50000"))
		require.True(t, reached)

		// 45s + 30s exceeds the original window but not the refreshed one.
		now = now.Add(30 * time.Second)
		_, reached, _ = serve(g, gatedRequest(rec.ID, "10.0.0.1:50000"))
		assert.True(t, reached)
	})
}

// explodingStore panics on Fetch when err is nil, otherwise fails with err.
// Either way a gated request must be denied, not crash or pass.
type explodingStore struct {
	err error
}

func (s *explodingStore) Save(ctx context.Context, rec session.Record) error {
	return errors.New("unavailable")
}

func (s *explodingStore) Fetch(ctx context.Context, id string) (session.Record, error) {
	if s.err != nil {
		return session.Record{}, s.err
	}
	panic("store invariant violated")
}

func (s *explodingStore) Delete(ctx context.Context, id string) error { return errors.New("unavailable") }

func (s *explodingStore) Ping(ctx context.Context) error { return errors.New("unavailable") }
