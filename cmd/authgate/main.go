// Command authgate serves the credential protocol over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/cookie"
	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/auth/password"
	"github.com/kbukum/authgate/authapi"
	"github.com/kbukum/authgate/bootstrap"
	"github.com/kbukum/authgate/config"
	"github.com/kbukum/authgate/database"
	"github.com/kbukum/authgate/observability"
	"github.com/kbukum/authgate/redis"
	"github.com/kbukum/authgate/server"
	"github.com/kbukum/authgate/server/middleware"
	"github.com/kbukum/authgate/user"
	"github.com/kbukum/authgate/version"
)

const serviceName = "authgate"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "authgate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	app.Logger.Info("authgate build", map[string]interface{}{"build": version.Get()})

	// Registration order is start order; shutdown runs in reverse.
	telemetry := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	db := database.NewComponent(cfg.Database, app.Logger).WithAutoMigrate(&user.Record{})

	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}
	if err := app.RegisterComponent(db); err != nil {
		return err
	}

	var cache *redis.Component
	if cfg.Redis.Enabled {
		cache = redis.NewComponent(cfg.Redis, app.Logger)
		if err := app.RegisterComponent(cache); err != nil {
			return err
		}
	}

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		return configure(ctx, a, db, cache)
	})

	return app.Run(context.Background())
}

// configure builds the protocol on the started infrastructure, mounts the
// routes and starts the HTTP server last.
func configure(ctx context.Context, app *bootstrap.App[*Config], db *database.Component, cache *redis.Component) error {
	cfg := app.Cfg
	log := app.Logger

	var store auth.UserStore = user.NewGormStore(db.DB())
	if cache != nil {
		store = user.NewCachedStore(store, cache.Client(), cfg.Redis.KeyPrefix, cfg.Redis.CacheDuration(), log)
	}

	tokens, err := jwt.NewServiceFromFiles(&cfg.Auth.JWT)
	if err != nil {
		return fmt.Errorf("load signing keys: %w", err)
	}

	metrics, err := observability.NewAuthMetrics(observability.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	svc := auth.NewService(store, password.NewHasher(cfg.Auth.Password), tokens, log,
		auth.WithMessages(cfg.Auth.Messages),
		auth.WithMetrics(metrics),
	)
	log.Info("Authentication configured", map[string]interface{}{"auth": cfg.Auth.Describe()})

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.GinEngine().Use(middleware.Tracing(metrics))
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll)

	handler := authapi.NewHandler(cfg.API, svc, cookie.New(cfg.Auth.Cookie), log)
	handler.RegisterRoutes(srv.GinEngine(), middleware.RateLimit(cfg.Server.RateLimit))

	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	return app.Components.StartAll(ctx)
}
