// Package cookie manages the session-identifying cookie shared by the auth
// and verification services.
//
// A Manager carries default attributes (path, HttpOnly, SameSite, Secure)
// loaded from the environment so both services emit and clear the cookie
// consistently. The cookie value is the opaque session identifier; the
// session's server-side state, not the cookie, is the source of truth, so
// values are stored in plain form. SetSigned/GetSigned add an HMAC-SHA256
// signature with key-rotation support for deployments that want
// tamper-evidence on top.
//
// # Usage
//
//	mgr := cookie.NewFromConfig(cfg)
//	mgr.Set(w, "session_id", rec.ID, cookie.WithMaxAge(3600))
//
//	id, err := mgr.Get(r, "session_id")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// no session presented
//	}
package cookie
