package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanso_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	completionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_completion_toggles_total",
			Help: "Completion toggles by resulting state and outcome",
		},
		[]string{"state", "result"},
	)

	monthCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_month_cache_lookups_total",
			Help: "Completion month cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	streakRecalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_streak_recalculations_total",
			Help: "Streak recomputations by outcome",
		},
		[]string{"result"},
	)

	seededHabitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kanso_seeded_habits_total",
			Help: "Demo habits created for first-run users",
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kanso_active_sessions",
			Help: "Number of open user sessions",
		},
	)
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(endpoint, c.Request.Method, status).Inc()
		httpRequestDuration.WithLabelValues(endpoint, c.Request.Method, status).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordToggle(completed bool, err error) {
	state := "uncompleted"
	if completed {
		state = "completed"
	}
	completionTogglesTotal.WithLabelValues(state, result(err)).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		monthCacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	monthCacheLookupsTotal.WithLabelValues("miss").Inc()
}

func RecordStreakRecalculation(err error) {
	streakRecalculationsTotal.WithLabelValues(result(err)).Inc()
}

func AddSeededHabits(n int) {
	seededHabitsTotal.Add(float64(n))
}

func SessionStarted() {
	activeSessions.Inc()
}

func SessionEnded() {
	activeSessions.Dec()
}
