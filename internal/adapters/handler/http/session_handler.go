package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type SessionHandler struct {
	sessions *services.SessionManager
}

func NewSessionHandler(sessions *services.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	UserID      string              `json:"user_id"`
	Timezone    string              `json:"timezone"`
	StartedAt   time.Time           `json:"started_at"`
	LoginStreak *domain.LoginStreak `json:"login_streak,omitempty"`
	Milestone   int                 `json:"milestone,omitempty"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/session", h.Start)
	router.DELETE("/session", h.End)
}

// Start godoc
// @Summary  Start a session, replacing any open one, and record the login
// @Tags     session
// @Produce  json
// @Param    X-Timezone header string false "IANA time zone"
// @Success  201 {object} sessionResponse
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /session [post]
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	loc, err := middleware.ParseTimezone(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid X-Timezone header"})
		return
	}

	res, err := h.sessions.Start(c.Request.Context(), userID, loc)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{
		UserID:      userID,
		Timezone:    res.Session.Location.String(),
		StartedAt:   res.Session.StartedAt,
		LoginStreak: res.LoginStreak,
		Milestone:   res.Milestone,
	})
}

// End godoc
// @Summary  End the current session
// @Tags     session
// @Success  204
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /session [delete]
func (h *SessionHandler) End(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if !h.sessions.End(userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
		return
	}

	c.Status(http.StatusNoContent)
}
