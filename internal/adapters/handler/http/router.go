package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

type RouterDependencies struct {
	HabitHandler        *HabitHandler
	CompletionHandler   *CompletionHandler
	StreakHandler       *StreakHandler
	StatsHandler        *StatsHandler
	SessionHandler      *SessionHandler
	SubscriptionHandler *SubscriptionHandler

	Tokens   middleware.TokenValidator
	Sessions middleware.SessionAcquirer

	// DBPing is nil when habits live in memory.
	DBPing    func(ctx context.Context) error
	Redis     *redis.Client
	RateLimit int
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Timezone")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.Use(metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "disabled"
		if deps.DBPing != nil {
			dbStatus = "connected"
			if err := deps.DBPing(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := cache.Status(ctx, deps.Redis)

		statusCode := http.StatusOK
		status := "ok"
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	if deps.Redis != nil {
		protected.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute))
	}
	{
		deps.SessionHandler.RegisterRoutes(protected)
		deps.SubscriptionHandler.RegisterRoutes(protected)
	}

	withSession := protected.Group("")
	withSession.Use(middleware.SessionMiddleware(deps.Sessions))
	{
		deps.HabitHandler.RegisterRoutes(withSession)
		deps.CompletionHandler.RegisterRoutes(withSession)
		deps.StreakHandler.RegisterRoutes(withSession)
		deps.StatsHandler.RegisterRoutes(withSession)
	}

	return router
}
