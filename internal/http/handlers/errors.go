package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/clients/lims"
	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard"
	"github.com/yungbote/seqmeta-backend/internal/platform/apierr"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

var sentinelErrors = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrMissingSampleOrProject, http.StatusBadRequest, "missing_sample_or_project"},
	{services.ErrSampleInvalid, http.StatusBadRequest, "invalid_sample"},
	{services.ErrSampleIDRequired, http.StatusBadRequest, "missing_sample_id"},
	{services.ErrSampleExists, http.StatusConflict, "sample_exists"},
	{services.ErrSampleNotFound, http.StatusNotFound, "sample_not_found"},
	{services.ErrSchemaInvalid, http.StatusBadRequest, "invalid_schema"},
	{services.ErrSchemaExists, http.StatusConflict, "schema_exists"},
	{services.ErrSchemaNotFound, http.StatusNotFound, "schema_not_found"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{services.ErrInvalidUser, http.StatusBadRequest, "invalid_user"},
	{services.ErrUserExists, http.StatusConflict, "user_exists"},
	{dashboard.ErrGraphicNotDefined, http.StatusNotFound, "graphic_not_defined"},
	{dashboard.ErrShapeMismatch, http.StatusBadRequest, "unsupported_format"},
	{dashboard.ErrInvalidPeriod, http.StatusBadRequest, "invalid_period"},
	{dashboard.ErrStatsUnavailable, http.StatusServiceUnavailable, "lims_not_configured"},
	{errInvalidBody, http.StatusBadRequest, "invalid_request"},
	{errBodyTooLarge, http.StatusRequestEntityTooLarge, "body_too_large"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// toAPIError maps service and client errors onto HTTP statuses.
func toAPIError(err error) error {
	if _, ok := apierr.As(err); ok {
		return err
	}
	var fse *services.FieldStoreError
	if errors.As(err, &fse) {
		return apierr.BadRequest("field_store_failed", err)
	}
	var statsErr *lims.StatsError
	if errors.As(err, &statsErr) {
		return apierr.New(http.StatusBadGateway, "lims_error", err)
	}
	var httpErr *lims.HTTPError
	if errors.As(err, &httpErr) {
		return apierr.New(http.StatusBadGateway, "lims_unavailable", err)
	}
	for _, s := range sentinelErrors {
		if errors.Is(err, s.err) {
			return apierr.New(s.status, s.code, err)
		}
	}
	return err
}

func respondErr(c *gin.Context, err error) {
	response.RespondAPIError(c, toAPIError(err))
}
