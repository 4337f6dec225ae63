package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/analysis"
	"tradejournal/internal/service"
)

type AnalysisHandler struct {
	Entries  *service.EntryService
	Analyzer analysis.Analyzer
	Timeout  time.Duration
	Log      *zap.Logger
}

func (h *AnalysisHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/analysis", h.analyze)
}

// analyze runs pattern analysis over the caller's entire journal. An empty
// strategy list is a successful "no patterns found"; provider failures are
// upstream errors, never silently downgraded.
func (h *AnalysisHandler) analyze(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	if h.Analyzer == nil {
		Error(c, http.StatusServiceUnavailable, "analysis engine not configured")
		return
	}

	entries, err := h.Entries.ListAll(c.Request.Context(), owner)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error())
		return
	}
	if len(entries) == 0 {
		OkMeta(c, []analysis.SuggestedStrategy{}, map[string]any{"entries": 0})
		return
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	strategies, err := h.Analyzer.Analyze(ctx, entries)
	if err != nil {
		if h.Log != nil {
			h.Log.Warn("analysis failed", zap.String("owner", owner), zap.Error(err))
		}
		switch {
		case errors.Is(err, analysis.ErrNoOutput):
			Error(c, http.StatusBadGateway, "analysis produced no output")
		case errors.Is(err, analysis.ErrInvalidOutput):
			Error(c, http.StatusBadGateway, "analysis output failed validation")
		default:
			Error(c, http.StatusBadGateway, err.Error())
		}
		return
	}
	OkMeta(c, strategies, map[string]any{"entries": len(entries), "strategies": len(strategies)})
}
