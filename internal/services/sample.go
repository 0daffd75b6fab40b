package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

const AnalysisDateField = "analysis_date"

var (
	ErrMissingSampleOrProject = errors.New("request must contain sample or project")
	ErrSampleExists           = errors.New("sample already exists")
	ErrSampleInvalid          = errors.New("invalid sample data")
)

// Aliases accepted for the typed sample columns. Everything else submitted
// goes into the metadata document.
var (
	sampleIDKeys   = []string{SampleIDField, "sample"}
	projectKeys    = []string{"project", "sample_project_name"}
	collectionKeys = []string{"sample_collection_date", "collection_sample_date"}
	sampleColumns  = []string{
		"library_preparation_kit",
		"sequencing_instrument_platform",
		"sequencing_instrument_model",
		"read_length",
		"diagnostic_pcr_ct_value_1",
	}
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006/01/02", "2006-01-02 15:04:05"}

type SampleService interface {
	Create(ctx context.Context, data map[string]any) (*types.Sample, error)
	GetAnalysisDates(ctx context.Context, sequencingSampleID string) ([]string, error)
	// Delete removes every sample row registered under sequencingSampleID
	// together with its bioinfo and lineage values.
	Delete(ctx context.Context, sequencingSampleID string) (int, error)
}

type sampleService struct {
	db          *gorm.DB
	log         *logger.Logger
	sampleRepo  repos.SampleRepo
	bioinfoRepo repos.BioinfoAnalysisValueRepo
}

func NewSampleService(db *gorm.DB, log *logger.Logger, sampleRepo repos.SampleRepo, bioinfoRepo repos.BioinfoAnalysisValueRepo) SampleService {
	return &sampleService{
		db:          db,
		log:         log.With("service", "SampleService"),
		sampleRepo:  sampleRepo,
		bioinfoRepo: bioinfoRepo,
	}
}

// HasSampleOrProject is the gate applied before a submission is split.
func HasSampleOrProject(data map[string]any) bool {
	for k := range data {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "sample", "project":
			return true
		}
	}
	return false
}

func (s *sampleService) Create(ctx context.Context, data map[string]any) (*types.Sample, error) {
	if !HasSampleOrProject(data) {
		return nil, ErrMissingSampleOrProject
	}
	row, err := buildSample(data)
	if err != nil {
		return nil, err
	}
	if rd := ctxutil.GetRequestData(ctx); rd != nil {
		uid := rd.UserID
		row.SubmittedByUserID = &uid
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := s.sampleRepo.ExistsBySequencingID(dbc, row.SequencingSampleID)
		if err != nil {
			return err
		}
		if exists {
			return ErrSampleExists
		}
		if _, err := s.sampleRepo.Create(dbc, []*types.Sample{row}); err != nil {
			if repos.IsUniqueViolation(err) {
				return ErrSampleExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSampleExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create sample %s: %w", row.SequencingSampleID, err)
	}
	s.log.Info("Sample created", ctxutil.LogFields(ctx, "sample", row.SequencingSampleID, "project", row.Project)...)
	return row, nil
}

func (s *sampleService) GetAnalysisDates(ctx context.Context, sequencingSampleID string) ([]string, error) {
	dbc := dbctx.Context{Ctx: ctx}
	sample, err := s.sampleRepo.GetLatestBySequencingID(dbc, sequencingSampleID)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, ErrSampleNotFound
	}
	dates, err := s.bioinfoRepo.ListValuesByFieldName(dbc, sample.ID, AnalysisDateField)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func (s *sampleService) Delete(ctx context.Context, sequencingSampleID string) (int, error) {
	sequencingSampleID = strings.TrimSpace(sequencingSampleID)
	if sequencingSampleID == "" {
		return 0, ErrSampleIDRequired
	}
	var deleted int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		rows, err := s.sampleRepo.ListBySequencingID(dbc, sequencingSampleID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrSampleNotFound
		}
		ids := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
		}
		if err := s.sampleRepo.FullDeleteByIDs(dbc, ids); err != nil {
			return err
		}
		deleted = len(ids)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSampleNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("delete sample %s: %w", sequencingSampleID, err)
	}
	s.log.Info("Sample deleted", ctxutil.LogFields(ctx, "sample", sequencingSampleID, "rows", deleted)...)
	return deleted, nil
}

func buildSample(data map[string]any) (*types.Sample, error) {
	row := &types.Sample{}
	meta := map[string]any{}
	ids := map[string]string{}
	for key, value := range data {
		norm := strings.ToLower(strings.TrimSpace(key))
		switch {
		case slices.Contains(sampleIDKeys, norm):
			ids[norm] = scalarOrEmpty(value)
		case slices.Contains(projectKeys, norm):
			row.Project = scalarOrEmpty(value)
		case slices.Contains(collectionKeys, norm):
			raw := scalarOrEmpty(value)
			if raw == "" {
				continue
			}
			d, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrSampleInvalid, key, err)
			}
			row.CollectionSampleDate = &d
		case slices.Contains(sampleColumns, norm):
			v, ok := scalarString(value)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a scalar", ErrSampleInvalid, key)
			}
			setColumn(row, norm, strings.TrimSpace(v))
		default:
			meta[key] = value
		}
	}
	id, err := resolveSampleID(ids)
	if err != nil {
		return nil, err
	}
	row.SequencingSampleID = id
	if row.SequencingSampleID == "" {
		return nil, fmt.Errorf("%w: %s is required", ErrSampleInvalid, SampleIDField)
	}
	if len(meta) > 0 {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata: %v", ErrSampleInvalid, err)
		}
		row.Metadata = datatypes.JSON(raw)
	}
	return row, nil
}

// resolveSampleID prefers the canonical key and rejects aliases that name a
// different sample.
func resolveSampleID(ids map[string]string) (string, error) {
	var id string
	for _, k := range sampleIDKeys {
		v := ids[k]
		if v == "" {
			continue
		}
		if id == "" {
			id = v
			continue
		}
		if !strings.EqualFold(id, v) {
			return "", fmt.Errorf("%w: %s %q conflicts with %s %q", ErrSampleInvalid, SampleIDField, id, k, v)
		}
	}
	return id, nil
}

func setColumn(row *types.Sample, column, v string) {
	switch column {
	case "library_preparation_kit":
		row.LibraryPreparationKit = v
	case "sequencing_instrument_platform":
		row.SequencingInstrumentPlatform = v
	case "sequencing_instrument_model":
		row.SequencingInstrumentModel = v
	case "read_length":
		row.ReadLength = v
	case "diagnostic_pcr_ct_value_1":
		row.DiagnosticPCRCtValue1 = v
	}
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func scalarOrEmpty(v any) string {
	s, _ := scalarString(v)
	return strings.TrimSpace(s)
}
