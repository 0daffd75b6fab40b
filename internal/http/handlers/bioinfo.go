package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type BioinfoHandler struct {
	log       *logger.Logger
	ingestion services.IngestionService
}

func NewBioinfoHandler(log *logger.Logger, ingestion services.IngestionService) *BioinfoHandler {
	return &BioinfoHandler{log: log.With("handler", "BioinfoHandler"), ingestion: ingestion}
}

// POST /api/bioinfo?schema=&version=
func (h *BioinfoHandler) Ingest(c *gin.Context) {
	data, err := decodeFlatMapping(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	res, err := h.ingestion.Ingest(c.Request.Context(), c.Query("schema"), c.Query("version"), data)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondCreated(c, res)
}
