package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/seqmeta-backend/internal/clients/lims"
	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/plotly"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type fakeSamples struct {
	got map[string]any
	err error
}

func (f *fakeSamples) Create(_ context.Context, data map[string]any) (*types.Sample, error) {
	f.got = data
	if f.err != nil {
		return nil, f.err
	}
	return &types.Sample{SequencingSampleID: "S1"}, nil
}

func (f *fakeSamples) GetAnalysisDates(_ context.Context, id string) ([]string, error) {
	if id != "S1" {
		return nil, services.ErrSampleNotFound
	}
	return []string{"20210304"}, nil
}

func (f *fakeSamples) Delete(_ context.Context, id string) (int, error) {
	if id != "S1" {
		return 0, services.ErrSampleNotFound
	}
	return 2, nil
}

type fakeIngestion struct {
	got    map[string]any
	schema string
	err    error
}

func (f *fakeIngestion) Ingest(_ context.Context, schema, _ string, data map[string]any) (*services.StoreResult, error) {
	f.got, f.schema = data, schema
	if f.err != nil {
		return nil, f.err
	}
	return &services.StoreResult{BioinfoStored: 1}, nil
}

func (f *fakeIngestion) StoreBioinfoData(context.Context, *types.Schema, *services.SplitData) (*services.StoreResult, error) {
	return nil, errors.New("not used")
}

type fakeDashboard struct {
	seqErr error
}

func (f *fakeDashboard) SequencingGraphics(context.Context) (map[string]plotly.Figure, error) {
	if f.seqErr != nil {
		return nil, f.seqErr
	}
	return map[string]plotly.Figure{"read_length": {}}, nil
}

func (f *fakeDashboard) LineageVariation(_ context.Context, days int) (dashboard.LineageVariationOutput, error) {
	if !dashboard.ValidPeriod(days) {
		return dashboard.LineageVariationOutput{}, dashboard.ErrInvalidPeriod
	}
	return dashboard.LineageVariationOutput{}, nil
}

func (f *fakeDashboard) Graphic(_ context.Context, name, format string) (any, error) {
	if _, err := dashboard.ParseGraphicName(name); err != nil {
		return nil, err
	}
	return []dashboard.CategoryValues{{Category: "Kit", Values: []float64{1}}}, nil
}

func (f *fakeDashboard) ListGraphics(context.Context) ([]dashboard.GraphicStatus, error) {
	return []dashboard.GraphicStatus{{Name: "library_kit_pcr_1", Formats: []string{"raw", "list_of_dict"}}}, nil
}

func (f *fakeDashboard) Invalidate(_ context.Context, name string) error {
	_, err := dashboard.ParseGraphicName(name)
	return err
}

func (f *fakeDashboard) Refresh(_ context.Context, names ...string) ([]string, error) {
	return names, nil
}

func newTestRouter(samples *fakeSamples, ingest *fakeIngestion, dash *fakeDashboard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	r := gin.New()
	sh := NewSampleHandler(log, samples)
	bh := NewBioinfoHandler(log, ingest)
	dh := NewDashboardHandler(log, dash)
	r.POST("/api/samples", sh.Create)
	r.GET("/api/samples/:id/analysis-dates", sh.AnalysisDates)
	r.DELETE("/api/samples/:id", sh.Delete)
	r.POST("/api/bioinfo", bh.Ingest)
	r.GET("/api/dashboard/sequencing", dh.Sequencing)
	r.GET("/api/dashboard/lineages", dh.Lineages)
	r.GET("/api/graphics", dh.List)
	r.GET("/api/graphics/:name", dh.Graphic)
	r.DELETE("/api/graphics/:name", dh.Invalidate)
	return r
}

func do(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope %q: %v", rec.Body.String(), err)
	}
	return env.Error
}

func TestHandlersStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		samples *fakeSamples
		ingest  *fakeIngestion
		dash    *fakeDashboard
		method  string
		target  string
		body    string
		status  int
		code    string
		message string
	}{
		{name: "sample_gate", method: http.MethodPost, target: "/api/samples", body: `{"sequencing_sample_id":"S1"}`, status: http.StatusBadRequest, code: "missing_sample_or_project"},
		{name: "sample_created", method: http.MethodPost, target: "/api/samples", body: `{"sample":"S1"}`, status: http.StatusCreated},
		{name: "sample_duplicate", samples: &fakeSamples{err: services.ErrSampleExists}, method: http.MethodPost, target: "/api/samples", body: `{"sample":"S1"}`, status: http.StatusConflict, code: "sample_exists"},
		{name: "sample_bad_json", method: http.MethodPost, target: "/api/samples", body: `[1,2]`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "sample_empty_body", method: http.MethodPost, target: "/api/samples", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "analysis_dates", method: http.MethodGet, target: "/api/samples/S1/analysis-dates", status: http.StatusOK},
		{name: "sample_delete", method: http.MethodDelete, target: "/api/samples/S1", status: http.StatusOK},
		{name: "sample_delete_unknown", method: http.MethodDelete, target: "/api/samples/S9", status: http.StatusNotFound, code: "sample_not_found"},
		{name: "analysis_dates_unknown", method: http.MethodGet, target: "/api/samples/S9/analysis-dates", status: http.StatusNotFound, code: "sample_not_found"},
		{
			name:    "field_store_failure",
			ingest:  &fakeIngestion{err: &services.FieldStoreError{Field: "CT_value"}},
			method:  http.MethodPost,
			target:  "/api/bioinfo",
			body:    `{"sequencing_sample_id":"S1","CT_value":{}}`,
			status:  http.StatusBadRequest,
			code:    "field_store_failed",
			message: "CT_value unable to store in database",
		},
		{name: "bioinfo_unknown_sample", ingest: &fakeIngestion{err: services.ErrSampleNotFound}, method: http.MethodPost, target: "/api/bioinfo", body: `{}`, status: http.StatusNotFound, code: "sample_not_found"},
		{name: "bioinfo_unknown_schema", ingest: &fakeIngestion{err: services.ErrSchemaNotFound}, method: http.MethodPost, target: "/api/bioinfo?schema=x", body: `{}`, status: http.StatusNotFound, code: "schema_not_found"},
		{name: "bioinfo_internal", ingest: &fakeIngestion{err: errors.New("db down")}, method: http.MethodPost, target: "/api/bioinfo", body: `{}`, status: http.StatusInternalServerError, code: "internal_error", message: "internal server error"},
		{
			name:    "lims_error",
			dash:    &fakeDashboard{seqErr: &lims.StatsError{Reason: "project not found"}},
			method:  http.MethodGet,
			target:  "/api/dashboard/sequencing",
			status:  http.StatusBadGateway,
			code:    "lims_error",
			message: "lims stats error: project not found",
		},
		{name: "sequencing_ok", method: http.MethodGet, target: "/api/dashboard/sequencing", status: http.StatusOK},
		{name: "lineages_default", method: http.MethodGet, target: "/api/dashboard/lineages", status: http.StatusOK},
		{name: "lineages_preset", method: http.MethodGet, target: "/api/dashboard/lineages?period=180", status: http.StatusOK},
		{name: "lineages_bad_period", method: http.MethodGet, target: "/api/dashboard/lineages?period=45", status: http.StatusBadRequest, code: "invalid_period"},
		{name: "lineages_non_numeric", method: http.MethodGet, target: "/api/dashboard/lineages?period=week", status: http.StatusBadRequest, code: "invalid_period"},
		{name: "graphic_ok", method: http.MethodGet, target: "/api/graphics/library_kit_pcr_1?format=list_of_dict", status: http.StatusOK},
		{name: "graphics_list", method: http.MethodGet, target: "/api/graphics", status: http.StatusOK},
		{name: "graphic_unknown", method: http.MethodGet, target: "/api/graphics/nope", status: http.StatusNotFound, code: "graphic_not_defined"},
		{name: "invalidate_unknown", method: http.MethodDelete, target: "/api/graphics/nope", status: http.StatusNotFound, code: "graphic_not_defined"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			samples, ingest, dash := tc.samples, tc.ingest, tc.dash
			if samples == nil {
				samples = &fakeSamples{}
			}
			if ingest == nil {
				ingest = &fakeIngestion{}
			}
			if dash == nil {
				dash = &fakeDashboard{}
			}
			rec := do(newTestRouter(samples, ingest, dash), tc.method, tc.target, "application/json", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.code == "" {
				return
			}
			apiErr := errorCode(t, rec)
			if apiErr.Code != tc.code {
				t.Fatalf("code=%q want %q", apiErr.Code, tc.code)
			}
			if tc.message != "" && apiErr.Message != tc.message {
				t.Fatalf("message=%q want %q", apiErr.Message, tc.message)
			}
		})
	}
}

func TestDecodeFlatMappingKeepsNumberText(t *testing.T) {
	ingest := &fakeIngestion{}
	rec := do(newTestRouter(&fakeSamples{}, ingest, &fakeDashboard{}), http.MethodPost, "/api/bioinfo?schema=relecov",
		"application/json", `{"sequencing_sample_id":"S1","ct_value":21.50}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	want := map[string]any{"sequencing_sample_id": "S1", "ct_value": json.Number("21.50")}
	if diff := cmp.Diff(want, ingest.got); diff != "" {
		t.Fatalf("decoded body (-want +got):\n%s", diff)
	}
	if ingest.schema != "relecov" {
		t.Fatalf("schema query=%q", ingest.schema)
	}
}

func TestDecodeFlatMappingForm(t *testing.T) {
	samples := &fakeSamples{}
	form := url.Values{"sample": {"S1", "ignored"}, "project": {"Relecov"}}
	rec := do(newTestRouter(samples, &fakeIngestion{}, &fakeDashboard{}), http.MethodPost, "/api/samples",
		"application/x-www-form-urlencoded", form.Encode())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	want := map[string]any{"sample": "S1", "project": "Relecov"}
	if diff := cmp.Diff(want, samples.got); diff != "" {
		t.Fatalf("decoded form (-want +got):\n%s", diff)
	}
}

func TestDecodeFlatMappingTooLarge(t *testing.T) {
	body := `{"sample":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := do(newTestRouter(&fakeSamples{}, &fakeIngestion{}, &fakeDashboard{}), http.MethodPost, "/api/samples", "application/json", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d want 413", rec.Code)
	}
}
