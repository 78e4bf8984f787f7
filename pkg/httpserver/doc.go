// Package httpserver wraps net/http.Server with graceful shutdown, signal
// handling, and environment-driven configuration so both services share one
// serving lifecycle.
//
// Run blocks until the context is canceled, SIGINT/SIGTERM is received, or
// the listener fails. On shutdown in-flight requests get ShutdownTimeout to
// complete. Start/stop hooks let entry points log lifecycle transitions
// without the server knowing about the application.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(l *slog.Logger) { l.Info("listening") }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", "error", err)
//	}
package httpserver
