package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
	now func() time.Time
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc, now: time.Now}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/monthly", h.GetMonthlyStats)
}

// GetMonthlyStats godoc
// @Summary  Monthly analytics view
// @Tags     stats
// @Produce  json
// @Param    year  query int false "Year, defaults to the current one"
// @Param    month query int false "Zero-indexed month, defaults to the current one"
// @Success  200 {object} domain.MonthlyStats
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /stats/monthly [get]
func (h *StatsHandler) GetMonthlyStats(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	key, err := monthQuery(c, sess, h.now())
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.svc.Monthly(c.Request.Context(), sess, key)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
