package auth

import "errors"

// ErrStorage wraps every persistence failure surfaced by Storage
// implementations so handlers can treat them uniformly.
var ErrStorage = errors.New("auth.storage_failure")
