package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verseyou/verse-api/internal/api"
	"github.com/verseyou/verse-api/internal/auth"
	"github.com/verseyou/verse-api/internal/core/service"
	"github.com/verseyou/verse-api/internal/infrastructure/config"
	"github.com/verseyou/verse-api/internal/infrastructure/db/mongo"
	"github.com/verseyou/verse-api/internal/infrastructure/db/postgres"
	"github.com/verseyou/verse-api/internal/infrastructure/db/redis"
	"github.com/verseyou/verse-api/internal/infrastructure/http/handlers"
	"github.com/verseyou/verse-api/internal/infrastructure/queue"
	"github.com/verseyou/verse-api/pkg/logger"
)

// @title        VerseYou API
// @version      1.0
// @description  Authentication, profiles, hobbies and events for the VerseYou platform.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Auth primitives ---
	hasher := auth.NewHasher(cfg.Password.BcryptCost)
	issuer, err := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer, cfg.JWT.Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer setup failed")
	}
	verifier, err := auth.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Leeway)
	if err != nil {
		log.Fatal().Err(err).Msg("token verifier setup failed")
	}

	// --- Stores ---
	pg, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer func() { _ = pg.Close() }()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	identityRepo := postgres.NewIdentityRepository(pg)
	roleRepo := postgres.NewRoleRepository(pg)
	profileRepo := postgres.NewProfileRepository(pg)
	hobbyRepo := postgres.NewHobbyRepository(pg)
	eventRepo := postgres.NewEventRepository(pg)
	auditRepo := mongo.NewAuditRepository(mongoDB)

	// --- Audit pipeline ---
	auditDispatcher := queue.NewAuditDispatcher(0, auditRepo, log)
	auditDispatcher.Start(ctx)

	throttle := redis.NewSignInThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	// --- Services ---
	authService := service.NewAuthService(
		identityRepo, profileRepo, hasher, issuer,
		throttle, auditDispatcher, cfg.Password.MinLength, log,
	)
	roleService := service.NewRoleService(roleRepo, identityRepo, auditDispatcher, log)
	profileService := service.NewProfileService(profileRepo)
	hobbyService := service.NewHobbyService(hobbyRepo)
	eventService := service.NewEventService(eventRepo)

	readiness := handlers.NewHealthDependenciesHandler(pg, rdb, mongoDB)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Roles:     roleService,
		Profiles:  profileService,
		Hobbies:   hobbyService,
		Events:    eventService,
		Audit:     auditRepo,
		Verifier:  verifier,
		Readiness: readiness.Readiness,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting verse-api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	log.Info().Msg("stopped")
}
