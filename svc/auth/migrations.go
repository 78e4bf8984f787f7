package auth

import "embed"

// Migrations holds the goose SQL migrations for the auth schema, applied by
// the auth entry point at startup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
