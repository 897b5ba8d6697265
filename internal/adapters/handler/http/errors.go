package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

var badRequestErrors = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidGoal,
	domain.ErrInvalidDate,
	domain.ErrInvalidMonth,
	domain.ErrInvalidDay,
	domain.ErrInvalidYear,
	domain.ErrInvalidCompletion,
}

// writeError maps a service error onto the response. Unexpected errors are logged
// and hidden from the client.
func writeError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": target.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrHabitLimitReached):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "session has ended, start a new one"})
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrMalformedRow):
		logger.ErrorContext(c.Request.Context(), "store unavailable", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable, try again later"})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return "", false
	}
	return userID, true
}

func currentSession(c *gin.Context) (*services.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context missing"})
		return nil, false
	}
	return sess, true
}

// monthQuery reads ?year=&month= with a zero-indexed month. Missing values default
// to the current month in the session's time zone.
func monthQuery(c *gin.Context, sess *services.Session, now time.Time) (domain.MonthKey, error) {
	current := sess.Today(now).Month()

	year := current.Year
	if s := c.Query("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return domain.MonthKey{}, domain.ErrInvalidYear
		}
		year = y
	}

	month := current.Month
	if s := c.Query("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return domain.MonthKey{}, domain.ErrInvalidMonth
		}
		month = m
	}

	return monthKey(year, month)
}

// monthKey validates a year and a zero-indexed month coming from a request.
func monthKey(year, month int) (domain.MonthKey, error) {
	if err := domain.ValidateYear(year); err != nil {
		return domain.MonthKey{}, err
	}
	if err := domain.ValidateMonth(month); err != nil {
		return domain.MonthKey{}, err
	}
	return domain.NewMonthKey(year, month), nil
}
