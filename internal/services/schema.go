package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

var (
	ErrSchemaExists   = errors.New("schema already exists")
	ErrSchemaInvalid  = errors.New("invalid schema definition")
	ErrSchemaNotFound = errors.New("schema not found")
)

// SchemaDefinition is the file/body form of a schema. JSON bodies decode
// through the same YAML decoder.
type SchemaDefinition struct {
	Name          string            `yaml:"name" json:"name"`
	Version       string            `yaml:"version" json:"version"`
	Description   string            `yaml:"description" json:"description,omitempty"`
	Default       bool              `yaml:"default" json:"default"`
	BioinfoFields []FieldDefinition `yaml:"bioinfo_fields" json:"bioinfo_fields"`
	LineageFields []FieldDefinition `yaml:"lineage_fields" json:"lineage_fields"`
}

type FieldDefinition struct {
	Property string `yaml:"property" json:"property"`
	Label    string `yaml:"label" json:"label,omitempty"`
}

// ParseSchemaDefinition decodes a YAML or JSON document and validates it.
func ParseSchemaDefinition(raw []byte) (*SchemaDefinition, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrSchemaInvalid)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var def SchemaDefinition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate enforces that every property name maps to exactly one category,
// compared case-insensitively.
func (d *SchemaDefinition) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrSchemaInvalid)
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Version = strings.TrimSpace(d.Version)
	if d.Name == "" || d.Version == "" {
		return fmt.Errorf("%w: name and version are required", ErrSchemaInvalid)
	}
	seen := map[string]string{}
	check := func(category string, fields []FieldDefinition) error {
		for i := range fields {
			fields[i].Property = strings.TrimSpace(fields[i].Property)
			p := fields[i].Property
			if p == "" {
				return fmt.Errorf("%w: empty property in %s", ErrSchemaInvalid, category)
			}
			if strings.EqualFold(p, SampleIDField) {
				return fmt.Errorf("%w: %s is reserved", ErrSchemaInvalid, SampleIDField)
			}
			key := strings.ToLower(p)
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("%w: property %q defined in %s and %s", ErrSchemaInvalid, p, prev, category)
			}
			seen[key] = category
		}
		return nil
	}
	if err := check("bioinfo_fields", d.BioinfoFields); err != nil {
		return err
	}
	return check("lineage_fields", d.LineageFields)
}

// FieldCategory says which value table a submitted property belongs to.
type FieldCategory int

const (
	FieldUnrecognized FieldCategory = iota
	FieldBioinfo
	FieldLineage
)

func (c FieldCategory) String() string {
	switch c {
	case FieldBioinfo:
		return "bioinfo"
	case FieldLineage:
		return "lineage"
	default:
		return "unrecognized"
	}
}

type FieldClassifier interface {
	Classify(property string) FieldCategory
}

// ClassifierFunc adapts a plain function to FieldClassifier.
type ClassifierFunc func(property string) FieldCategory

func (f ClassifierFunc) Classify(property string) FieldCategory { return f(property) }

type schemaClassifier map[string]FieldCategory

func (c schemaClassifier) Classify(property string) FieldCategory {
	return c[strings.ToLower(strings.TrimSpace(property))]
}

// NewSchemaClassifier indexes a schema's loaded field lists. Bioinfo wins if
// a legacy schema lists a property under both categories.
func NewSchemaClassifier(s *types.Schema) FieldClassifier {
	c := schemaClassifier{}
	if s == nil {
		return c
	}
	for _, f := range s.LineageFields {
		if f != nil {
			c[strings.ToLower(f.PropertyName)] = FieldLineage
		}
	}
	for _, f := range s.BioinfoFields {
		if f != nil {
			c[strings.ToLower(f.PropertyName)] = FieldBioinfo
		}
	}
	return c
}

type SchemaService interface {
	Create(ctx context.Context, def *SchemaDefinition) (*types.Schema, error)
	Get(ctx context.Context, name, version string) (*types.Schema, error)
	// Resolve returns name/version when version is set, otherwise the default
	// schema for name (or for any name when name is blank too).
	Resolve(ctx context.Context, name, version string) (*types.Schema, error)
	List(ctx context.Context) ([]*types.Schema, error)
}

type schemaService struct {
	db          *gorm.DB
	log         *logger.Logger
	schemaRepo  repos.SchemaRepo
	defaultName string
}

func NewSchemaService(db *gorm.DB, log *logger.Logger, schemaRepo repos.SchemaRepo, defaultName string) SchemaService {
	return &schemaService{
		db:          db,
		log:         log.With("service", "SchemaService"),
		schemaRepo:  schemaRepo,
		defaultName: strings.TrimSpace(defaultName),
	}
}

func (s *schemaService) Create(ctx context.Context, def *SchemaDefinition) (*types.Schema, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	row := &types.Schema{
		Name:        def.Name,
		Version:     def.Version,
		Description: def.Description,
		IsDefault:   def.Default,
	}
	for _, f := range def.BioinfoFields {
		row.BioinfoFields = append(row.BioinfoFields, &types.BioinfoAnalysisField{PropertyName: f.Property, Label: f.Label})
	}
	for _, f := range def.LineageFields {
		row.LineageFields = append(row.LineageFields, &types.LineageField{PropertyName: f.Property, Label: f.Label})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.schemaRepo.GetByNameVersion(dbc, def.Name, def.Version)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrSchemaExists
		}
		if def.Default {
			if err := s.schemaRepo.ClearDefault(dbc, def.Name); err != nil {
				return err
			}
		}
		if _, err := s.schemaRepo.Create(dbc, row); err != nil {
			if repos.IsUniqueViolation(err) {
				return ErrSchemaExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSchemaExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create schema %s/%s: %w", def.Name, def.Version, err)
	}
	s.log.Info("Schema created",
		"name", row.Name,
		"version", row.Version,
		"bioinfo_fields", len(row.BioinfoFields),
		"lineage_fields", len(row.LineageFields),
		"default", row.IsDefault,
	)
	return row, nil
}

func (s *schemaService) Get(ctx context.Context, name, version string) (*types.Schema, error) {
	row, err := s.schemaRepo.GetByNameVersion(dbctx.Context{Ctx: ctx}, strings.TrimSpace(name), strings.TrimSpace(version))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSchemaNotFound
	}
	return row, nil
}

func (s *schemaService) Resolve(ctx context.Context, name, version string) (*types.Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultName
	}
	if strings.TrimSpace(version) != "" {
		return s.Get(ctx, name, version)
	}
	row, err := s.schemaRepo.GetDefault(dbctx.Context{Ctx: ctx}, name)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSchemaNotFound
	}
	return row, nil
}

func (s *schemaService) List(ctx context.Context) ([]*types.Schema, error) {
	return s.schemaRepo.List(dbctx.Context{Ctx: ctx})
}
