package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/authflow/pkg/config"
	"github.com/dmitrymomot/authflow/pkg/cookie"
	"github.com/dmitrymomot/authflow/pkg/guard"
	"github.com/dmitrymomot/authflow/pkg/httpserver"
	"github.com/dmitrymomot/authflow/pkg/logger"
	"github.com/dmitrymomot/authflow/pkg/redis"
	"github.com/dmitrymomot/authflow/pkg/session"
	"github.com/dmitrymomot/authflow/svc/verify"
)

type appConfig struct {
	Logger  logger.Config
	Server  httpserver.Config
	Cookie  cookie.Config
	Redis   redis.Config
	Session session.Config
	Guard   guard.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger, slog.String("service", "verify"))

	if err := run(cfg, log); err != nil {
		log.Error("verify service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg appConfig, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	// The verify service shares the session store with the auth service but
	// only ever reads it, unless refresh-on-read is enabled.
	store := session.NewRedisStore(redisClient, cfg.Session)
	g := guard.New(store, cookies, cfg.Guard, cfg.Session, log)

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("verify service listening", "addr", cfg.Server.Addr)
		}),
	)
	return srv.Run(ctx, verify.Router(g, log, redis.Healthcheck(redisClient)))
}
