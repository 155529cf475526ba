package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/travelinfo/travel-api/internal/api"
	"github.com/travelinfo/travel-api/internal/config"
	"github.com/travelinfo/travel-api/internal/platform/postgres"
	"github.com/travelinfo/travel-api/internal/platform/redis"
	"github.com/travelinfo/travel-api/internal/service"
	"github.com/travelinfo/travel-api/internal/service/auth"
)

// application holds the shared dependencies so they can be closed together
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	jwtService auth.JWTService
	services   api.Services
	rpc        *api.Router
}

// newApplication wires stores, the optional rating cache and the services
// on top of an established database pool.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	places := postgres.NewPostgresPlaceStore(db, logger)
	taxis := postgres.NewPostgresTaxiStore(db, logger)
	reviews := postgres.NewPostgresReviewStore(db, logger)
	users := postgres.NewPostgresUserStore(db, logger)

	var ratings service.RatingCache
	if cfg.Cache.Enabled() {
		app.redis, err = redis.NewClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		ratings = redis.NewRatingCache(app.redis, cfg.Cache.RatingTTL(), logger)
		logger.Info("rating cache enabled", "ttl", cfg.Cache.RatingTTL().String())
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.services = api.Services{
		Places:  service.NewPlaceService(places, taxis, reviews, ratings, logger),
		Taxis:   service.NewTaxiService(taxis, places, logger),
		Reviews: service.NewReviewService(reviews, ratings, logger),
		Users:   service.NewUserService(users, app.jwtService, hasher, hasher, logger),
	}

	app.rpc = api.NewRouter(api.NewErrorTranslator(!cfg.Server.IsProduction(), logger), logger)
	api.RegisterAll(app.rpc, app.services)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup closes the redis client and the database pool.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
