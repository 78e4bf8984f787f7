package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authflow/pkg/cookie"
	"github.com/dmitrymomot/authflow/pkg/fingerprint"
	"github.com/dmitrymomot/authflow/pkg/session"
	"github.com/dmitrymomot/authflow/svc/auth/provider"
)

const stateCookieName = "oauth_state"

// Service owns the sign-up, sign-in, logout, and OAuth flows. Credential
// verification is delegated to a provider; the service handles everything
// after a verified identity comes back: user upsert, device audit, session
// issuance, cookie placement.
type Service struct {
	provider provider.Provider
	oauth    provider.OAuthProvider
	storage  Storage
	sessions *session.Manager
	cookies  *cookie.Manager
	cfg      Config
	sessCfg  session.Config
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithOAuth enables the OAuth flow with the given provider. Without it the
// OAuth routes answer with a not-configured error.
func WithOAuth(p provider.OAuthProvider) Option {
	return func(s *Service) {
		s.oauth = p
	}
}

// NewService wires an auth service. All collaborators are required except
// the OAuth provider, which is attached via WithOAuth.
func NewService(
	p provider.Provider,
	storage Storage,
	sessions *session.Manager,
	cookies *cookie.Manager,
	cfg Config,
	sessCfg session.Config,
	log *slog.Logger,
	opts ...Option,
) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		provider: p,
		storage:  storage,
		sessions: sessions,
		cookies:  cookies,
		cfg:      cfg,
		sessCfg:  sessCfg,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request) {
	email, password, ok := credentials(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	identity, err := s.provider.SignUp(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrEmailTaken):
			s.respondError(w, http.StatusConflict, "email already registered")
		case errors.Is(err, provider.ErrUnavailable):
			s.log.ErrorContext(r.Context(), "signup provider unavailable", "provider", s.provider.Name(), "error", err)
			s.respondError(w, http.StatusBadGateway, "identity provider unavailable")
		default:
			s.log.ErrorContext(r.Context(), "signup failed", "provider", s.provider.Name(), "error", err)
			s.respondError(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	s.completeSignIn(w, r, identity, s.provider.Name())
}

func (s *Service) handleSignin(w http.ResponseWriter, r *http.Request) {
	email, password, ok := credentials(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	identity, err := s.provider.SignIn(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidCredentials) {
			s.respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.log.ErrorContext(r.Context(), "signin failed", "provider", s.provider.Name(), "error", err)
		s.respondError(w, http.StatusBadGateway, "identity provider unavailable")
		return
	}

	s.completeSignIn(w, r, identity, s.provider.Name())
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, err := s.cookies.Get(r, s.sessCfg.CookieName); err == nil {
		if err := s.sessions.Destroy(r.Context(), sessionID); err != nil {
			// The cookie is cleared regardless; the record ages out on TTL.
			s.log.ErrorContext(r.Context(), "session destroy failed", "session_id", sessionID, "error", err)
		}
	}
	s.cookies.Delete(w, s.sessCfg.CookieName)

	http.Redirect(w, r, s.cfg.LogoutURL, http.StatusFound)
}

func (s *Service) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	if s.oauth == nil {
		s.respondError(w, http.StatusNotFound, "oauth is not configured")
		return
	}

	state := uuid.NewString()
	if err := s.cookies.SetSigned(w, stateCookieName, state,
		cookie.WithMaxAge(int(s.cfg.StateTTL.Seconds())),
	); err != nil {
		s.log.ErrorContext(r.Context(), "state cookie rejected", "error", err)
		s.respondError(w, http.StatusInternalServerError, "oauth start failed")
		return
	}

	http.Redirect(w, r, s.oauth.AuthURL(state), http.StatusFound)
}

func (s *Service) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauth == nil {
		s.respondError(w, http.StatusNotFound, "oauth is not configured")
		return
	}

	expected, err := s.cookies.GetSigned(r, stateCookieName)
	s.cookies.Delete(w, stateCookieName)
	if err != nil || expected == "" || r.URL.Query().Get("state") != expected {
		s.respondError(w, http.StatusForbidden, "state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	identity, err := s.oauth.ResolveIdentity(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrInvalidCode):
			s.respondError(w, http.StatusUnauthorized, "invalid authorization code")
		case errors.Is(err, provider.ErrNoVerifiedEmail):
			s.respondError(w, http.StatusForbidden, "no verified email on the account")
		default:
			s.log.ErrorContext(r.Context(), "oauth resolve failed", "provider", s.oauth.Name(), "error", err)
			s.respondError(w, http.StatusBadGateway, "identity provider unavailable")
		}
		return
	}

	s.completeSignIn(w, r, identity, s.oauth.Name())
}

// completeSignIn is the shared tail of every successful verification: user
// upsert with a device audit row, session issuance, cookie placement, then
// redirect to the verified landing page.
func (s *Service) completeSignIn(w http.ResponseWriter, r *http.Request, identity provider.Identity, providerName string) {
	info := fingerprint.Extract(r)

	user, err := s.storage.SaveSignIn(r.Context(),
		User{
			Provider:    providerName,
			ProviderUID: identity.ProviderUID,
			Email:       identity.Email,
			Name:        identity.Name,
			AvatarURL:   identity.AvatarURL,
		},
		Device{
			IP:             info.IP,
			UserAgent:      info.UserAgent,
			AcceptLanguage: info.AcceptLanguage,
		},
	)
	if err != nil {
		s.log.ErrorContext(r.Context(), "sign-in persistence failed", "provider", providerName, "error", err)
		s.respondError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	rec, err := s.sessions.Create(r.Context(), r, user.ID)
	if err != nil {
		s.log.ErrorContext(r.Context(), "session issuance failed", "user_id", user.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	s.cookies.Set(w, s.sessCfg.CookieName, rec.ID,
		cookie.WithMaxAge(int(s.sessCfg.TTL.Seconds())),
	)

	http.Redirect(w, r, s.cfg.VerifiedURL, http.StatusSeeOther)
}

func (s *Service) respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// credentials reads the email/password pair from form data, falling back to
// a JSON body for API clients.
func credentials(r *http.Request) (email, password string, ok bool) {
	if err := r.ParseForm(); err == nil {
		email = r.PostFormValue("email")
		password = r.PostFormValue("password")
	}

	if email == "" && password == "" {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			email, password = body.Email, body.Password
		}
	}

	return email, password, email != "" && password != ""
}
