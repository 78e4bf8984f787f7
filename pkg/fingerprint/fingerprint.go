package fingerprint

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/dmitrymomot/authflow/pkg/clientip"
)

const (
	// UnknownValue substitutes missing device attributes so that the
	// canonical string keeps its shape even for degenerate requests.
	UnknownValue = "Unknown"

	// Size is the length of a generated fingerprint in hex characters.
	Size = sha256.Size * 2
)

// Info holds the device-identifying request attributes consumed by Generate.
// Callers are expected to apply defaults before invocation; Extract does so.
type Info struct {
	IP             string
	UserAgent      string
	AcceptLanguage string
}

// Extract collects device attributes from the request, substituting
// sentinel defaults for missing values. The client IP prefers forwarding
// headers and falls back to the TCP peer address (see clientip.GetIP).
func Extract(r *http.Request) Info {
	ip := clientip.GetIP(r)
	if ip == "" {
		ip = UnknownValue
	}

	ua := r.UserAgent()
	if ua == "" {
		ua = UnknownValue
	}

	return Info{
		IP:             ip,
		UserAgent:      ua,
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
}

// Generate returns the lowercase hex SHA-256 digest of the canonical
// "ip|user_agent|accept_language" string. Pure and safe for concurrent use.
func Generate(info Info) string {
	raw := info.IP + "|" + info.UserAgent + "|" + info.AcceptLanguage
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// FromRequest is shorthand for Generate(Extract(r)).
func FromRequest(r *http.Request) string {
	return Generate(Extract(r))
}

// Match compares two fingerprints in constant time. Equality is byte-exact;
// there is no tolerance for near-matches.
func Match(stored, current string) bool {
	if len(stored) != len(current) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(current)) == 1
}
