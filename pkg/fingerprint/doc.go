// Package fingerprint derives a stable device identity from volatile,
// partially-untrusted request metadata. It is the secondary binding between
// a session and the device that created it: the auth service records the
// fingerprint at session issuance, and the verification gateway recomputes
// it on every gated request and compares for exact equality.
//
// The canonical input is "ip|user_agent|accept_language", in that exact
// field order, hashed with SHA-256 and hex-encoded. Identical inputs always
// produce identical output; any single attribute change (including an IP
// change within the same subnet) produces a different fingerprint and
// invalidates the session. This is intentional.
//
// Extract applies the sentinel defaults ("Unknown" for missing user agent
// or unresolvable IP, empty string for missing Accept-Language) so that
// Generate itself stays a pure function over its input.
//
// # Usage
//
//	info := fingerprint.Extract(r)
//	fp := fingerprint.Generate(info)
//
//	// Later, on a gated request:
//	if !fingerprint.Match(storedFP, fingerprint.Generate(fingerprint.Extract(r))) {
//	    // deny
//	}
package fingerprint
