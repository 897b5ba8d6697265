package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

type CompletionHandler struct {
	habits  *services.HabitService
	streaks *services.StreakService
	now     func() time.Time
}

func NewCompletionHandler(habits *services.HabitService, streaks *services.StreakService) *CompletionHandler {
	return &CompletionHandler{
		habits:  habits,
		streaks: streaks,
		now:     time.Now,
	}
}

type monthResponse struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	MonthName   string           `json:"month_name"`
	DaysInMonth int              `json:"days_in_month"`
	Completions map[string][]int `json:"completions"`
}

type toggleRequest struct {
	HabitID string `json:"habit_id" binding:"required"`
	Year    int    `json:"year" binding:"required"`
	Month   *int   `json:"month" binding:"required"`
	Day     int    `json:"day" binding:"required"`
}

type toggleResponse struct {
	HabitID   string         `json:"habit_id"`
	Date      domain.Date    `json:"date"`
	Completed bool           `json:"completed"`
	Streak    *domain.Streak `json:"streak"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	completions := router.Group("/completions")
	{
		completions.GET("", h.GetMonth)
		completions.POST("/toggle", h.Toggle)
	}
}

// GetMonth godoc
// @Summary  Completions of one month
// @Tags     completions
// @Produce  json
// @Param    year  query int false "Year, defaults to the current one"
// @Param    month query int false "Zero-indexed month, defaults to the current one"
// @Success  200 {object} monthResponse
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /completions [get]
func (h *CompletionHandler) GetMonth(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	key, err := monthQuery(c, sess, h.now())
	if err != nil {
		writeError(c, err)
		return
	}

	// Adjacent months are only preloaded once the capability fetch has reported pro.
	isPro, known := sess.Capability()
	if err := sess.Completions().PreloadAdjacent(c.Request.Context(), key, isPro && known); err != nil {
		writeError(c, err)
		return
	}

	month, err := sess.Completions().LoadMonth(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, monthResponse{
		Year:        key.Year,
		Month:       key.Month,
		MonthName:   domain.MonthName(key.Month),
		DaysInMonth: key.Days(),
		Completions: completedDays(month),
	})
}

// Toggle godoc
// @Summary  Flip the completion of a habit on one day
// @Tags     completions
// @Accept   json
// @Produce  json
// @Param    toggle body toggleRequest true "Habit and day"
// @Success  200 {object} toggleResponse
// @Failure  400,404 {object} map[string]string
// @Security BearerAuth
// @Router   /completions/toggle [post]
func (h *CompletionHandler) Toggle(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := monthKey(req.Year, *req.Month)
	if err != nil {
		writeError(c, err)
		return
	}
	date, err := key.Date(req.Day)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()

	if _, err := h.habits.Get(ctx, sess.UserID, req.HabitID); err != nil {
		writeError(c, err)
		return
	}

	completed, err := sess.Completions().Toggle(ctx, req.HabitID, key, req.Day)
	if err != nil {
		writeError(c, err)
		return
	}

	streak, err := h.streaks.Recalculate(ctx, sess.UserID, req.HabitID, sess.Location)
	if err != nil {
		logger.WarnContext(ctx, "completion toggled but streak is stale", "user_id", sess.UserID, "habit_id", req.HabitID, "error", err)
	}

	c.JSON(http.StatusOK, toggleResponse{
		HabitID:   req.HabitID,
		Date:      date,
		Completed: completed,
		Streak:    streak,
	})
}

func completedDays(month domain.MonthCompletions) map[string][]int {
	out := make(map[string][]int, len(month))
	for habitID, days := range month {
		list := make([]int, 0, len(days))
		for day, done := range days {
			if done {
				list = append(list, day)
			}
		}
		slices.Sort(list)
		out[habitID] = list
	}
	return out
}
