package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name  string `json:"name" binding:"required"`
	Emoji string `json:"emoji"`
	Goal  int    `json:"goal" binding:"required"`
}

type updateHabitRequest struct {
	Name  *string `json:"name"`
	Emoji *string `json:"emoji"`
	Goal  *int    `json:"goal"`
}

type resetHabitResponse struct {
	HabitID string         `json:"habit_id"`
	Streak  *domain.Streak `json:"streak"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/reset", h.Reset)
	}
}

// Create godoc
// @Summary  Create a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    habit body createHabitRequest true "Habit"
// @Success  201 {object} domain.Habit
// @Failure  400,403 {object} map[string]string
// @Security BearerAuth
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := domain.ValidateHabitFields(req.Name, req.Goal); err != nil {
		writeError(c, err)
		return
	}

	// The limit check needs the capability, so wait for the session's fetch.
	isPro, err := sess.WaitCapability(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID: sess.UserID,
		Name:   req.Name,
		Emoji:  req.Emoji,
		Goal:   req.Goal,
		IsPro:  isPro,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary  List habits, seeding the demo habits for a new user
// @Tags     habits
// @Produce  json
// @Success  200 {array} domain.Habit
// @Security BearerAuth
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if list == nil {
		list = []*domain.Habit{}
	}
	c.JSON(http.StatusOK, list)
}

// Update godoc
// @Summary  Update name, emoji or goal of a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    id    path string             true "Habit ID"
// @Param    habit body updateHabitRequest true "Fields to overwrite"
// @Success  200 {object} domain.Habit
// @Failure  400,404 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil || req.Goal != nil {
		current, err := h.svc.Get(c.Request.Context(), userID, id)
		if err != nil {
			writeError(c, err)
			return
		}
		name, goal := current.Name, current.Goal
		if req.Name != nil {
			name = *req.Name
		}
		if req.Goal != nil {
			goal = *req.Goal
		}
		if err := domain.ValidateHabitFields(name, goal); err != nil {
			writeError(c, err)
			return
		}
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:     id,
		UserID: userID,
		Name:   req.Name,
		Emoji:  req.Emoji,
		Goal:   req.Goal,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Delete godoc
// @Summary  Delete a habit with its completions and streak
// @Tags     habits
// @Param    id path string true "Habit ID"
// @Success  204
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), sess.UserID, id); err != nil {
		writeError(c, err)
		return
	}
	sess.Completions().PurgeHabit(id)

	c.Status(http.StatusNoContent)
}

// Reset godoc
// @Summary  Clear the completion history of a habit
// @Tags     habits
// @Produce  json
// @Param    id path string true "Habit ID"
// @Success  200 {object} resetHabitResponse
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /habits/{id}/reset [post]
func (h *HabitHandler) Reset(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id := c.Param("id")

	streak, err := h.svc.ResetHistory(c.Request.Context(), sess, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resetHabitResponse{HabitID: id, Streak: streak})
}
