// Package main is the entrypoint for the Giftwell API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/giftwell/giftwell/internal/auth"
	"github.com/giftwell/giftwell/internal/cache"
	"github.com/giftwell/giftwell/internal/config"
	"github.com/giftwell/giftwell/internal/handler"
	"github.com/giftwell/giftwell/internal/middleware"
	"github.com/giftwell/giftwell/internal/repository"
	"github.com/giftwell/giftwell/internal/server"
	"github.com/giftwell/giftwell/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize token issuer and services
	tokens := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	userService := service.NewUserService(repo)
	registryService := service.NewRegistryService(repo)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(userService, tokens, logger)
	listHandler := handler.NewGiftListHandler(registryService, logger)
	itemHandler := handler.NewItemHandler(registryService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:   h,
		health: healthHandler,
		auth:   authHandler,
		lists:  listHandler,
		items:  itemHandler,
		tokens: tokens,
		repo:   repo,
		cache:  cacheClient,
		cfg:    cfg,
		logger: logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", cfg.TokenTTL.String(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base   *handler.Handler
	health *handler.HealthHandler
	auth   *handler.AuthHandler
	lists  *handler.GiftListHandler
	items  *handler.ItemHandler
	tokens *auth.TokenIssuer
	repo   *repository.Repository
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.CORS(deps.cfg.CORSAllowedOrigin))
	r.Use(middleware.MaxBody(deps.cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Registration and login (no auth required)
	r.Post("/users", deps.auth.Register)
	r.With(middleware.LoginRateLimit(middleware.RateLimitConfig{
		Logger:  deps.logger,
		Limiter: deps.cache,
		Enabled: deps.cfg.LoginRateLimitEnabled,
		RPS:     deps.cfg.LoginRateLimitRPS,
		Burst:   deps.cfg.LoginRateLimitBurst,
	})).Post("/token", deps.auth.Token)

	// Authenticated routes
	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Tokens: deps.tokens,
		Users:  deps.repo,
		Cache:  deps.cache,
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Route("/gift-lists", func(r chi.Router) {
			r.Post("/", deps.lists.Create)
			r.Get("/", deps.lists.List)

			r.Route("/{listID}", func(r chi.Router) {
				r.Patch("/", deps.lists.Update)
				r.Delete("/", deps.lists.Delete)

				r.Route("/items", func(r chi.Router) {
					r.Post("/", deps.items.Create)
					r.Get("/", deps.items.List)
					r.Patch("/{itemID}", deps.items.Update)
					r.Delete("/{itemID}", deps.items.Delete)
				})
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
