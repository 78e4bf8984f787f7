// Package redis connects the services to the session store backend.
//
// Connect establishes a go-redis client from environment configuration with
// bounded retries, so a service starting before Redis is ready does not crash
// loop. Healthcheck adapts the client's PING into the
// func(context.Context) error shape consumed by the HTTP health endpoint;
// the liveness probe stays off the request hot path.
//
// The client's lifecycle (Connect/Close) is owned by the process entry
// point and injected into every component that needs it.
package redis
