// Package session holds the server-side session state shared by the auth
// and verification services.
//
// A Record binds an opaque session identifier to the device fingerprint
// captured at issuance and to the owning user. Records are immutable once
// issued: the store only ever sees whole-record overwrites keyed by the
// session identifier, and the fingerprint recorded at creation time is never
// recomputed for an existing record.
//
// The Store interface abstracts the expiring key-value backend. RedisStore
// is the production implementation: records are serialized to JSON and
// written with a fixed TTL, where every write restarts the full expiry
// window (there is no sliding expiry on reads unless the verification
// gateway is explicitly configured to refresh). MemoryStore mirrors the same
// semantics, including expiry, for tests.
//
// Manager drives the issuance flow: extract device info from the
// authenticated request, compute the fingerprint, generate a fresh
// identifier, validate, and persist. A failed save leaves no partial session
// reachable by any client.
//
//	┌────────┐  session_id   ┌────────────┐
//	│ Client │ ────────────► │  cookie    │
//	└────────┘               └────────────┘
//	                               │
//	                               ▼
//	┌─────────────────────────────────────┐
//	│   Manager (issue) / guard (verify)  │
//	└─────────────────────────────────────┘
//	                │  Save / Fetch / Delete, fixed TTL
//	                ▼
//	           ┌────────┐
//	           │ Store  │ (redis, memory)
//	           └────────┘
package session
