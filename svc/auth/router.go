package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authflow/pkg/clientip"
)

// Router builds the auth service HTTP surface. The probe handler serves
// /health so deployments can check the service and its backends.
func (s *Service) Router(probe http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)

	r.Post("/signup", s.handleSignup)
	r.Post("/signin", s.handleSignin)
	r.Get("/logout", s.handleLogout)

	r.Route("/oauth/github", func(r chi.Router) {
		r.Get("/", s.handleOAuthStart)
		r.Get("/callback", s.handleOAuthCallback)
	})

	if probe != nil {
		r.Get("/health", probe)
	}

	return r
}
