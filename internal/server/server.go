package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/zaffaf/backend/internal/auth"
	"example.com/zaffaf/backend/internal/config"
	"example.com/zaffaf/backend/internal/handlers"
	"example.com/zaffaf/backend/internal/notifications"
	"example.com/zaffaf/backend/internal/places"
	"example.com/zaffaf/backend/internal/repository"
	"example.com/zaffaf/backend/internal/venues"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool, cache *redis.Client) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	venueCacheRepo := repository.NewVenueCacheRepository(db)
	searchCacheRepo := repository.NewSearchCacheRepository(cache, cfg.Places.SearchCacheTTL)
	notificationHub := notifications.NewHub()

	placesClient := places.NewGoogleClient(cfg.Places.APIKey, cfg.Places.BaseURL, cfg.Places.Language, cfg.Places.Timeout, cfg.Places.RateLimitPerSecond)
	mapper := places.Mapper{
		BaseURL:   cfg.Places.BaseURL,
		APIKey:    cfg.Places.APIKey,
		MinRating: cfg.Places.MinRating,
	}
	aggregator := places.NewAggregator(placesClient, mapper, logger, places.AggregatorOptions{
		MaxCities:       cfg.Places.MaxCities,
		MaxTermsPerCity: cfg.Places.MaxTermsPerCity,
		MaxPages:        cfg.Places.MaxPages,
		PageDelay:       cfg.Places.PageDelay,
		MaxResults:      cfg.Places.MaxResults,
	})
	venueService := venues.NewService(aggregator, searchCacheRepo, venueCacheRepo, placesClient, mapper, cfg.Places.EnableFetch, logger)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	venueHandler := handlers.NewVenueHandler(venueService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, notificationHub)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo, notificationHub)
	checklistHandler := handlers.NewChecklistHandler(checklistRepo, notificationHub)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		authHandler,
		venueHandler,
		favoriteHandler,
		budgetHandler,
		checklistHandler,
		notificationHandler,
		auth.JWTMiddleware(tokenManager),
		authRateLimiter(cfg.Auth),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
