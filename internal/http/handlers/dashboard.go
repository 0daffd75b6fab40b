package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type DashboardHandler struct {
	log       *logger.Logger
	dashboard services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log.With("handler", "DashboardHandler"), dashboard: dashboard}
}

// GET /api/dashboard/sequencing
func (h *DashboardHandler) Sequencing(c *gin.Context) {
	figs, err := h.dashboard.SequencingGraphics(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"graphics": figs})
}

// GET /api/dashboard/lineages?period=730|180|30
func (h *DashboardHandler) Lineages(c *gin.Context) {
	days := 0
	if raw := strings.TrimSpace(c.Query("period")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondErr(c, fmt.Errorf("%w: %q", dashboard.ErrInvalidPeriod, raw))
			return
		}
		days = n
	}
	out, err := h.dashboard.LineageVariation(c.Request.Context(), days)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/graphics/:name?format=list_of_dict|dict
func (h *DashboardHandler) Graphic(c *gin.Context) {
	name := c.Param("name")
	data, err := h.dashboard.Graphic(c.Request.Context(), name, c.Query("format"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"graphic": name, "format": c.Query("format"), "data": data})
}

// GET /api/graphics
func (h *DashboardHandler) List(c *gin.Context) {
	graphics, err := h.dashboard.ListGraphics(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"graphics": graphics})
}

// DELETE /api/graphics/:name
func (h *DashboardHandler) Invalidate(c *gin.Context) {
	if err := h.dashboard.Invalidate(c.Request.Context(), c.Param("name")); err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/graphics/:name/refresh
func (h *DashboardHandler) Refresh(c *gin.Context) {
	done, err := h.dashboard.Refresh(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"refreshed": done})
}
