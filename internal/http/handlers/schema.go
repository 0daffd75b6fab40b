package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type SchemaHandler struct {
	schemas services.SchemaService
}

func NewSchemaHandler(schemas services.SchemaService) *SchemaHandler {
	return &SchemaHandler{schemas: schemas}
}

// POST /api/schemas accepts YAML or JSON.
func (h *SchemaHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := readBody(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	def, err := services.ParseSchemaDefinition(raw)
	if err != nil {
		respondErr(c, err)
		return
	}
	row, err := h.schemas.Create(c.Request.Context(), def)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *SchemaHandler) List(c *gin.Context) {
	rows, err := h.schemas.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"schemas": rows})
}

func (h *SchemaHandler) Get(c *gin.Context) {
	row, err := h.schemas.Get(c.Request.Context(), c.Param("name"), c.Param("version"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, row)
}
