package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/comitanigiacomo/kanso-habits/docs"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

type repositories struct {
	habits        domain.HabitRepository
	completions   domain.CompletionRepository
	streaks       domain.StreakRepository
	subscriptions domain.SubscriptionRepository
	logins        domain.LoginStreakRepository
}

type app struct {
	router   *gin.Engine
	sessions *services.SessionManager

	db  *sqlx.DB
	rdb *redis.Client
}

func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// newApp wires the store, services and router described by cfg.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	var repos repositories
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		store := repository.NewMemoryStore()
		repos = repositories{
			habits:        store.Habits(),
			completions:   store.Completions(),
			streaks:       store.Streaks(),
			subscriptions: store.Subscriptions(),
			logins:        store.LoginStreaks(),
		}
	default:
		logger.Info("connecting to database", "host", cfg.DBHost, "driver", cfg.DBDriver)
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		repos = repositories{
			habits:        repository.NewPostgresHabitRepository(db),
			completions:   repository.NewPostgresCompletionRepository(db),
			streaks:       repository.NewPostgresStreakRepository(db),
			subscriptions: repository.NewPostgresSubscriptionRepository(db),
			logins:        repository.NewPostgresLoginStreakRepository(db),
		}
		logger.Info("database connected")
	}

	if cfg.RedisEnabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// Redis only backs the habit cache and the rate limiter.
			logger.Warn("redis unavailable, continuing without cache", "error", err)
		} else {
			a.rdb = rdb
			repos.habits = repository.NewCachedHabitRepository(repos.habits, rdb)
		}
	}

	streakSvc := services.NewStreakService(repos.completions, repos.streaks)
	habitSvc := services.NewHabitService(repos.habits, streakSvc, cfg.SeedHabits, cfg.FreeHabitLimit)
	subscriptionSvc := services.NewSubscriptionService(repos.subscriptions, cfg.FreeHabitLimit)
	statsSvc := services.NewStatsService(habitSvc, streakSvc)
	loginSvc := services.NewLoginStreakService(repos.logins)
	tokenSvc := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, 24*time.Hour)

	a.sessions = services.NewSessionManager(repos.completions, subscriptionSvc, loginSvc, cfg.DefaultTimezone)

	deps := adapterHTTP.RouterDependencies{
		HabitHandler:        adapterHTTP.NewHabitHandler(habitSvc),
		CompletionHandler:   adapterHTTP.NewCompletionHandler(habitSvc, streakSvc),
		StreakHandler:       adapterHTTP.NewStreakHandler(habitSvc, streakSvc),
		StatsHandler:        adapterHTTP.NewStatsHandler(statsSvc),
		SessionHandler:      adapterHTTP.NewSessionHandler(a.sessions),
		SubscriptionHandler: adapterHTTP.NewSubscriptionHandler(subscriptionSvc, habitSvc),
		Tokens:              tokenSvc,
		Sessions:            a.sessions,
		Redis:               a.rdb,
		RateLimit:           cfg.RateLimit,
		StartTime:           time.Now(),
	}
	if a.db != nil {
		deps.DBPing = a.db.PingContext
	}

	a.router = adapterHTTP.NewRouter(deps)
	return a, nil
}

// Close ends every session and releases the connections.
func (a *app) Close() {
	a.sessions.Shutdown()
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
}
