package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type sessionResponse struct {
	UserID      string              `json:"user_id"`
	Timezone    string              `json:"timezone"`
	LoginStreak *domain.LoginStreak `json:"login_streak"`
	Milestone   int                 `json:"milestone"`
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("Success: Start records the login in the user's time zone", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, "user-1", http.MethodPost, "/api/v1/session", "", "X-Timezone", "America/New_York")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		res := decode[sessionResponse](t, w)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, "America/New_York", res.Timezone)
		require.NotNil(t, res.LoginStreak)
		assert.Equal(t, 1, res.LoginStreak.CurrentStreak)
		assert.Equal(t, 0, res.Milestone)

		sess, ok := f.sessions.Get("user-1")
		require.True(t, ok)
		assert.Equal(t, "America/New_York", sess.Location.String())
	})

	t.Run("Success: Start replaces the open session", func(t *testing.T) {
		f := newFixture(t)

		f.do(t, "user-1", http.MethodPost, "/api/v1/session", "")
		first, ok := f.sessions.Get("user-1")
		require.True(t, ok)

		w := f.do(t, "user-1", http.MethodPost, "/api/v1/session", "")
		require.Equal(t, http.StatusCreated, w.Code)

		second, ok := f.sessions.Get("user-1")
		require.True(t, ok)
		assert.NotSame(t, first, second)

		_, err := first.Completions().LoadMonth(t.Context(), domain.NewMonthKey(2024, 0))
		assert.ErrorIs(t, err, domain.ErrSessionClosed)
	})

	t.Run("Success: End", func(t *testing.T) {
		f := newFixture(t)
		f.do(t, "user-1", http.MethodPost, "/api/v1/session", "")

		w := f.do(t, "user-1", http.MethodDelete, "/api/v1/session", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		_, ok := f.sessions.Get("user-1")
		assert.False(t, ok)

		w = f.do(t, "user-1", http.MethodDelete, "/api/v1/session", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 400 Unknown time zone", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, "user-1", http.MethodPost, "/api/v1/session", "", "X-Timezone", "Nowhere/Land")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
