package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
	habits        *services.HabitService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService, habits *services.HabitService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, habits: habits}
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/subscription", h.Get)
}

// Get godoc
// @Summary  Subscription status and habit allowance
// @Tags     subscription
// @Produce  json
// @Success  200 {object} services.SubscriptionStatus
// @Security BearerAuth
// @Router   /subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := h.habits.Count(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	status, err := h.subscriptions.Status(c.Request.Context(), userID, count)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
