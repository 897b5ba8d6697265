package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type StreakHandler struct {
	habits  *services.HabitService
	streaks *services.StreakService
}

func NewStreakHandler(habits *services.HabitService, streaks *services.StreakService) *StreakHandler {
	return &StreakHandler{habits: habits, streaks: streaks}
}

func (h *StreakHandler) RegisterRoutes(router *gin.RouterGroup) {
	streaks := router.Group("/streaks")
	{
		streaks.GET("", h.List)
		streaks.POST("/:habit_id/recalculate", h.Recalculate)
	}
}

// List godoc
// @Summary  Stored streaks of every habit
// @Tags     streaks
// @Produce  json
// @Success  200 {array} domain.Streak
// @Security BearerAuth
// @Router   /streaks [get]
func (h *StreakHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.streaks.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if list == nil {
		list = []*domain.Streak{}
	}
	c.JSON(http.StatusOK, list)
}

// Recalculate godoc
// @Summary  Recompute a habit's streak from its full history
// @Tags     streaks
// @Produce  json
// @Param    habit_id path string true "Habit ID"
// @Success  200 {object} domain.Streak
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /streaks/{habit_id}/recalculate [post]
func (h *StreakHandler) Recalculate(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	habitID := c.Param("habit_id")

	if _, err := h.habits.Get(c.Request.Context(), sess.UserID, habitID); err != nil {
		writeError(c, err)
		return
	}

	streak, err := h.streaks.Recalculate(c.Request.Context(), sess.UserID, habitID, sess.Location)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}
