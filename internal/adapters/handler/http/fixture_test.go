package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

const freeLimit = 3

type fixture struct {
	router   *gin.Engine
	store    *repository.MemoryStore
	sessions *services.SessionManager
	tokens   *services.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()

	streakSvc := services.NewStreakService(store.Completions(), store.Streaks())
	habitSvc := services.NewHabitService(store.Habits(), streakSvc, config.DefaultSeedHabits(), freeLimit)
	subscriptionSvc := services.NewSubscriptionService(store.Subscriptions(), freeLimit)
	statsSvc := services.NewStatsService(habitSvc, streakSvc)
	loginSvc := services.NewLoginStreakService(store.LoginStreaks())
	sessions := services.NewSessionManager(store.Completions(), subscriptionSvc, loginSvc, time.UTC)
	tokens := services.NewTokenService("test-secret", "", "", time.Hour)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:        adapterHTTP.NewHabitHandler(habitSvc),
		CompletionHandler:   adapterHTTP.NewCompletionHandler(habitSvc, streakSvc),
		StreakHandler:       adapterHTTP.NewStreakHandler(habitSvc, streakSvc),
		StatsHandler:        adapterHTTP.NewStatsHandler(statsSvc),
		SessionHandler:      adapterHTTP.NewSessionHandler(sessions),
		SubscriptionHandler: adapterHTTP.NewSubscriptionHandler(subscriptionSvc, habitSvc),
		Tokens:              tokens,
		Sessions:            sessions,
		RateLimit:           100,
		StartTime:           time.Now(),
	})

	t.Cleanup(sessions.Shutdown)

	return &fixture{
		router:   router,
		store:    store,
		sessions: sessions,
		tokens:   tokens,
	}
}

func (f *fixture) do(t *testing.T, userID, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if userID != "" {
		token, err := f.tokens.GenerateToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
