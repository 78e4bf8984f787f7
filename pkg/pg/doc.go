// Package pg bootstraps the PostgreSQL layer used for user and device audit
// records. It wraps pgx/v5 connection pooling with retrying startup,
// goose/v3 schema migrations from an embedded filesystem, a health probe for
// the HTTP health endpoint, and error helpers shared by the repositories.
//
// The pool's lifecycle (Connect/Close) is owned by the process entry point
// and injected into the components that need it.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrationsFS, log); err != nil {
//		return err
//	}
package pg
