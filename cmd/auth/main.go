package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/authflow/pkg/config"
	"github.com/dmitrymomot/authflow/pkg/cookie"
	"github.com/dmitrymomot/authflow/pkg/httpserver"
	"github.com/dmitrymomot/authflow/pkg/logger"
	"github.com/dmitrymomot/authflow/pkg/pg"
	"github.com/dmitrymomot/authflow/pkg/redis"
	"github.com/dmitrymomot/authflow/pkg/session"
	"github.com/dmitrymomot/authflow/svc/auth"
	"github.com/dmitrymomot/authflow/svc/auth/provider"
)

type appConfig struct {
	Logger   logger.Config
	Server   httpserver.Config
	Cookie   cookie.Config
	Redis    redis.Config
	Postgres pg.Config
	Session  session.Config
	Auth     auth.Config
	Supabase provider.SupabaseConfig
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger, slog.String("service", "auth"))

	if err := run(cfg, log); err != nil {
		log.Error("auth service stopped", "error", err)
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

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.Postgres, auth.Migrations, log); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	store := session.NewRedisStore(redisClient, cfg.Session)
	sessions := session.NewManager(store, log)

	opts := []auth.Option{}
	// GitHub OAuth is opt-in: the flow is wired only when the app
	// credentials are present in the environment.
	if os.Getenv("GITHUB_CLIENT_ID") != "" {
		var gh provider.GithubConfig
		config.MustLoad(&gh)
		opts = append(opts, auth.WithOAuth(provider.NewGithub(gh)))
	}

	svc := auth.NewService(
		provider.NewSupabase(cfg.Supabase),
		auth.NewRepository(pool),
		sessions,
		cookies,
		cfg.Auth,
		cfg.Session,
		log,
		opts...,
	)

	probe := httpserver.HealthCheckHandler(log,
		redis.Healthcheck(redisClient),
		pg.Healthcheck(pool),
	)

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("auth service listening", "addr", cfg.Server.Addr)
		}),
	)
	return srv.Run(ctx, svc.Router(probe))
}
