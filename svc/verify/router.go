// Package verify composes the session-gated service: a chi router wrapped
// by the verification gateway. Public routes come from the gateway's exempt
// list; everything else requires a valid session with a matching device
// fingerprint.
package verify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authflow/pkg/clientip"
	"github.com/dmitrymomot/authflow/pkg/guard"
	"github.com/dmitrymomot/authflow/pkg/httpserver"
	"github.com/dmitrymomot/authflow/pkg/session"
)

// Router builds the verify service HTTP surface behind the gateway. Probes
// feed the /health endpoint; the gateway decides which paths skip
// verification.
func Router(g *guard.Guard, log *slog.Logger, probes ...func(context.Context) error) chi.Router {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(clientip.Middleware)
	r.Use(g.Middleware)

	r.Get("/", handleIndex)
	r.Get("/health", httpserver.HealthCheckHandler(log, probes...))
	r.Get("/verified", handleVerified)
	r.Get("/me", handleMe)

	return r
}

// handleIndex is the public landing page.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"service": "verify"})
}

// handleVerified is the post-sign-in landing page. It sits on the exempt
// list so the redirect from the auth service always renders.
func handleVerified(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "verified"})
}

// handleMe is a gated resource: it only executes after the gateway verified
// the session, so the record is always present.
func handleMe(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		// Unreachable behind the gateway; answering 401 keeps the handler
		// safe if it is ever mounted without it.
		respond(w, http.StatusUnauthorized, map[string]string{"error": "no session"})
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"user_id":    rec.UserID,
		"session_id": rec.ID,
		"issued_at":  rec.IssuedAt,
	})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
