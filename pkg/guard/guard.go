package guard

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authflow/pkg/cookie"
	"github.com/dmitrymomot/authflow/pkg/fingerprint"
	"github.com/dmitrymomot/authflow/pkg/session"
)

// Guard verifies the session cookie and device fingerprint on every gated
// request. It holds no per-request state and is safe for concurrent use.
type Guard struct {
	store         session.Store
	cookies       *cookie.Manager
	cookieName    string
	authURL       string
	exempt        map[string]struct{}
	refreshOnRead bool
	log           *slog.Logger
}

// New creates a verification gateway. The store is shared with the issuing
// auth service; the cookie manager must use the same cookie attributes so
// both services address the same cookie.
func New(store session.Store, cookies *cookie.Manager, cfg Config, sessCfg session.Config, log *slog.Logger) *Guard {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Guard{
		store:         store,
		cookies:       cookies,
		cookieName:    sessCfg.CookieName,
		authURL:       cfg.AuthURL,
		exempt:        cfg.exemptSet(),
		refreshOnRead: sessCfg.RefreshOnRead,
		log:           log,
	}
}

// Middleware wraps a downstream handler with session verification.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Any panic below converts to a denial: the gateway must never let
		// an internal fault escape as a response that could be mistaken for
		// access, nor as a 5xx.
		defer func() {
			if rec := recover(); rec != nil {
				g.log.ErrorContext(r.Context(), "panic during session verification", "panic", rec, "path", r.URL.Path)
				g.deny(w, r)
			}
		}()

		if _, ok := g.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, err := g.cookies.Get(r, g.cookieName)
		if err != nil || sessionID == "" {
			g.log.WarnContext(r.Context(), "no session cookie", "path", r.URL.Path)
			g.deny(w, r)
			return
		}

		rec, err := g.store.Fetch(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				// Covers both "never existed" and "expired" uniformly.
				g.log.WarnContext(r.Context(), "unknown or expired session", "session_id", sessionID)
			} else {
				g.log.ErrorContext(r.Context(), "session lookup failed", "session_id", sessionID, "error", err)
			}
			g.deny(w, r)
			return
		}

		current := fingerprint.FromRequest(r)
		if !fingerprint.Match(rec.Fingerprint, current) {
			g.log.WarnContext(r.Context(), "fingerprint mismatch", "session_id", sessionID)
			g.deny(w, r)
			return
		}

		if g.refreshOnRead {
			// Restart the TTL window on verified activity. A failed refresh
			// is logged but does not deny: the session was just verified and
			// remains valid until its current expiry.
			if err := g.store.Save(r.Context(), rec); err != nil {
				g.log.ErrorContext(r.Context(), "session refresh failed", "session_id", sessionID, "error", err)
			}
		}

		next.ServeHTTP(w, r.WithContext(session.WithRecord(r.Context(), rec)))
	})
}

// deny redirects to the auth entry point. Every denial looks the same from
// outside: same status, same location, regardless of which check failed.
func (g *Guard) deny(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, g.authURL, http.StatusFound)
}
