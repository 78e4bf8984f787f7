// Package clientip resolves the originating client address from an
// *http.Request when the service sits behind one or more reverse proxies.
//
// The resolution algorithm examines forwarding headers in descending
// priority until the first valid IP address is found:
//
//  1. X-Forwarded-For – comma-separated list (the first valid IP is used)
//  2. X-Real-IP       – set by reverse proxies such as Nginx
//  3. RemoteAddr      – TCP peer address as a fallback
//
// Helper functions are provided for common scenarios:
//
//   - GetIP extracts the client IP from an *http.Request.
//   - SetIPToContext and GetIPFromContext store/retrieve the resolved
//     address inside a context.Context.
//   - Middleware is a net/http compatible middleware that adds the IP to
//     the request's context so downstream handlers can fetch it without
//     duplicating the resolution logic.
//
// GetIP never returns an error. If no valid address is found an empty
// string is returned so callers can decide how to proceed. The session
// fingerprinting code substitutes its own sentinel in that case.
//
// Forwarding headers are client-controlled unless a trusted proxy strips
// them; deployments that terminate TLS at the edge should ensure the edge
// overwrites X-Forwarded-For before trusting the resolved value.
package clientip
