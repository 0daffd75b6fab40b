package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type SampleHandler struct {
	log     *logger.Logger
	samples services.SampleService
}

func NewSampleHandler(log *logger.Logger, samples services.SampleService) *SampleHandler {
	return &SampleHandler{log: log.With("handler", "SampleHandler"), samples: samples}
}

// POST /api/samples
func (h *SampleHandler) Create(c *gin.Context) {
	data, err := decodeFlatMapping(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !services.HasSampleOrProject(data) {
		respondErr(c, services.ErrMissingSampleOrProject)
		return
	}
	row, err := h.samples.Create(c.Request.Context(), data)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "Successful upload information",
		"sample":  row,
	})
}

// GET /api/samples/:id/analysis-dates
func (h *SampleHandler) AnalysisDates(c *gin.Context) {
	id := c.Param("id")
	dates, err := h.samples.GetAnalysisDates(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sequencing_sample_id": id, "analysis_dates": dates})
}

// DELETE /api/samples/:id
func (h *SampleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	n, err := h.samples.Delete(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sequencing_sample_id": id, "deleted": n})
}
