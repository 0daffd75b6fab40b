package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/observability"
	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

const SampleIDField = "sequencing_sample_id"

var (
	ErrSampleNotFound   = errors.New("sample not found")
	ErrSampleIDRequired = errors.New("sequencing_sample_id is required")
)

// FieldStoreError reports the submitted field whose value could not be stored.
type FieldStoreError struct {
	Field string
	Err   error
}

func (e *FieldStoreError) Error() string {
	return e.Field + " unable to store in database"
}

func (e *FieldStoreError) Unwrap() error { return e.Err }

// SplitData is a flat submission partitioned by destination table. Keys keep
// the spelling they were submitted with.
type SplitData struct {
	Sample       string         `json:"sample"`
	Bioinfo      map[string]any `json:"bioinfo"`
	Lineage      map[string]any `json:"lineage"`
	Unrecognized []string       `json:"unrecognized,omitempty"`
}

// SplitBioinfoData partitions data by the classifier. The sample identifier
// only ever lands in Sample.
func SplitBioinfoData(data map[string]any, classify FieldClassifier) *SplitData {
	out := &SplitData{
		Bioinfo: map[string]any{},
		Lineage: map[string]any{},
	}
	for field, value := range data {
		if strings.EqualFold(strings.TrimSpace(field), SampleIDField) {
			if s, ok := scalarString(value); ok {
				out.Sample = strings.TrimSpace(s)
			}
			continue
		}
		switch classify.Classify(field) {
		case FieldBioinfo:
			out.Bioinfo[field] = value
		case FieldLineage:
			out.Lineage[field] = value
		default:
			out.Unrecognized = append(out.Unrecognized, field)
		}
	}
	sort.Strings(out.Unrecognized)
	return out
}

type StoreResult struct {
	SampleID      uuid.UUID `json:"sample_id"`
	BioinfoStored int       `json:"bioinfo_stored"`
	LineageStored int       `json:"lineage_stored"`
	Unrecognized  []string  `json:"unrecognized,omitempty"`
	SchemaName    string    `json:"schema_name"`
	SchemaVersion string    `json:"schema_version"`
}

type IngestionService interface {
	// Ingest resolves the schema, splits data and stores the recognised groups.
	Ingest(ctx context.Context, schemaName, schemaVersion string, data map[string]any) (*StoreResult, error)
	StoreBioinfoData(ctx context.Context, schema *types.Schema, split *SplitData) (*StoreResult, error)
}

type ingestionService struct {
	db          *gorm.DB
	log         *logger.Logger
	metrics     *observability.Metrics
	validate    *validator.Validate
	schemas     SchemaService
	sampleRepo  repos.SampleRepo
	fieldRepo   repos.SchemaFieldRepo
	bioinfoRepo repos.BioinfoAnalysisValueRepo
	lineageRepo repos.LineageValueRepo
}

func NewIngestionService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	schemas SchemaService,
	sampleRepo repos.SampleRepo,
	fieldRepo repos.SchemaFieldRepo,
	bioinfoRepo repos.BioinfoAnalysisValueRepo,
	lineageRepo repos.LineageValueRepo,
) IngestionService {
	return &ingestionService{
		db:          db,
		log:         log.With("service", "IngestionService"),
		metrics:     metrics,
		validate:    newValueValidator(),
		schemas:     schemas,
		sampleRepo:  sampleRepo,
		fieldRepo:   fieldRepo,
		bioinfoRepo: bioinfoRepo,
		lineageRepo: lineageRepo,
	}
}

// valueRecord is the validated shape of one stored value.
type valueRecord struct {
	FieldID uuid.UUID `validate:"required"`
	Value   string    `validate:"required,storedvalue"`
}

// newValueValidator registers "storedvalue", which caps values at the
// column width declared in the domain package.
func newValueValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("storedvalue", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= types.MaxValueLength
	}); err != nil {
		panic(err)
	}
	return v
}

func (s *ingestionService) Ingest(ctx context.Context, schemaName, schemaVersion string, data map[string]any) (*StoreResult, error) {
	schema, err := s.schemas.Resolve(ctx, schemaName, schemaVersion)
	if err != nil {
		return nil, err
	}
	split := SplitBioinfoData(data, NewSchemaClassifier(schema))
	if len(split.Unrecognized) > 0 {
		s.log.Warn("Ignoring fields not defined in schema", ctxutil.LogFields(ctx,
			"schema", schema.Name,
			"version", schema.Version,
			"sample", split.Sample,
			"fields", split.Unrecognized,
		)...)
	}
	res, err := s.StoreBioinfoData(ctx, schema, split)
	if err != nil {
		return nil, err
	}
	res.Unrecognized = split.Unrecognized
	return res, nil
}

func (s *ingestionService) StoreBioinfoData(ctx context.Context, schema *types.Schema, split *SplitData) (*StoreResult, error) {
	if schema == nil {
		return nil, ErrSchemaNotFound
	}
	if split == nil || split.Sample == "" {
		return nil, ErrSampleIDRequired
	}
	res := &StoreResult{SchemaName: schema.Name, SchemaVersion: schema.Version}
	schemaID := schema.ID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		sample, err := s.sampleRepo.GetLatestBySequencingID(dbc, split.Sample)
		if err != nil {
			return err
		}
		if sample == nil {
			return ErrSampleNotFound
		}
		res.SampleID = sample.ID

		for _, field := range sortedKeys(split.Bioinfo) {
			def, err := s.fieldRepo.FindBioinfoField(dbc, &schemaID, field)
			if err != nil {
				return err
			}
			var id uuid.UUID
			if def != nil {
				id = def.ID
			}
			rec, err := s.record(field, id, split.Bioinfo[field])
			if err != nil {
				return err
			}
			row := &types.BioinfoAnalysisValue{SampleID: sample.ID, BioinfoAnalysisFieldID: rec.FieldID, Value: rec.Value}
			if _, err := s.bioinfoRepo.Create(dbc, []*types.BioinfoAnalysisValue{row}); err != nil {
				return &FieldStoreError{Field: field, Err: err}
			}
			res.BioinfoStored++
		}

		for _, field := range sortedKeys(split.Lineage) {
			def, err := s.fieldRepo.FindLineageField(dbc, &schemaID, field)
			if err != nil {
				return err
			}
			var id uuid.UUID
			if def != nil {
				id = def.ID
			}
			rec, err := s.record(field, id, split.Lineage[field])
			if err != nil {
				return err
			}
			row := &types.LineageValue{SampleID: sample.ID, LineageFieldID: rec.FieldID, Value: rec.Value}
			if _, err := s.lineageRepo.Create(dbc, []*types.LineageValue{row}); err != nil {
				return &FieldStoreError{Field: field, Err: err}
			}
			res.LineageStored++
		}
		return nil
	})
	if err != nil {
		var fse *FieldStoreError
		if errors.As(err, &fse) {
			s.log.Warn("Field value rejected", ctxutil.LogFields(ctx, "sample", split.Sample, "field", fse.Field, "error", fse.Err)...)
			return nil, err
		}
		if errors.Is(err, ErrSampleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("store analysis values for %s: %w", split.Sample, err)
	}

	s.metrics.AddIngested("bioinfo", res.BioinfoStored)
	s.metrics.AddIngested("lineage", res.LineageStored)
	s.log.Debug("Stored analysis values",
		"sample", split.Sample,
		"bioinfo", res.BioinfoStored,
		"lineage", res.LineageStored,
	)
	return res, nil
}

func (s *ingestionService) record(field string, id uuid.UUID, value any) (*valueRecord, error) {
	str, ok := scalarString(value)
	if !ok {
		return nil, &FieldStoreError{Field: field, Err: fmt.Errorf("value of type %T is not a scalar", value)}
	}
	rec := &valueRecord{FieldID: id, Value: str}
	if err := s.validate.Struct(rec); err != nil {
		return nil, &FieldStoreError{Field: field, Err: err}
	}
	return rec, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// scalarString renders JSON scalars the way they were submitted. Objects and
// arrays are not scalars; nil renders empty so the required check rejects it.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	default:
		return "", false
	}
}
