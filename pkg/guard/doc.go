// Package guard is the session verification gateway: middleware that gates
// every inbound request on a valid session cookie and a matching device
// fingerprint.
//
// The decision procedure for a single request, short-circuiting at the
// first terminal outcome:
//
//  1. Exempt path (exact match): forward without any session check.
//  2. No session cookie: redirect to the auth entry point.
//  3. No record in the store for the presented identifier, whether it never
//     existed or has expired: redirect.
//  4. Recomputed device fingerprint differs from the one recorded at
//     issuance: redirect.
//  5. Match: forward to the downstream handler with the verified record in
//     the request context.
//
// Fail-closed is absolute. Store failures, malformed records, and panics in
// the verification path all converge on the same redirect. The gateway
// never forwards a request it cannot positively verify, and it never
// surfaces which check failed: a missing session and a wrong device look
// identical from outside.
//
// Verification is read-only against the store unless RefreshOnRead is
// enabled, in which case a successful match re-saves the record to restart
// its TTL window.
package guard
