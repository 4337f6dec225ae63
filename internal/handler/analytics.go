package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/analytics"
	"tradejournal/internal/service"
)

type AnalyticsHandler struct {
	Entries *service.EntryService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/analytics")
	g.GET("/equity-curve", h.equityCurve)
	g.GET("/sessions", h.sessions)
}

func (h *AnalyticsHandler) equityCurve(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	entries, err := h.Entries.ListAll(c.Request.Context(), owner)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error())
		return
	}
	points := analytics.EquityCurve(entries, time.Now().UTC())
	OkMeta(c, points, map[string]any{
		"entries":           len(entries),
		"insufficient_data": analytics.InsufficientData(points),
	})
}

func (h *AnalyticsHandler) sessions(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	entries, err := h.Entries.ListAll(c.Request.Context(), owner)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error())
		return
	}
	slices := analytics.SessionDistribution(entries)
	OkMeta(c, slices, map[string]any{
		"entries":           len(entries),
		"insufficient_data": len(entries) == 0,
	})
}
