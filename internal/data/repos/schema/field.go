package schema

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// SchemaFieldRepo resolves submitted property names against the field tables.
// Lookups are case-insensitive. A nil schemaID searches every schema and the
// most recently registered field wins.
type SchemaFieldRepo interface {
	FindBioinfoField(dbc dbctx.Context, schemaID *uuid.UUID, propertyName string) (*types.BioinfoAnalysisField, error)
	FindLineageField(dbc dbctx.Context, schemaID *uuid.UUID, propertyName string) (*types.LineageField, error)
}

type schemaFieldRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchemaFieldRepo(db *gorm.DB, baseLog *logger.Logger) SchemaFieldRepo {
	return &schemaFieldRepo{db: db, log: baseLog.With("repo", "SchemaFieldRepo")}
}

func (r *schemaFieldRepo) FindBioinfoField(dbc dbctx.Context, schemaID *uuid.UUID, propertyName string) (*types.BioinfoAnalysisField, error) {
	name := strings.TrimSpace(propertyName)
	if name == "" {
		return nil, nil
	}
	q := dbc.DB(r.db).Where("LOWER(property_name) = LOWER(?)", name)
	if schemaID != nil {
		q = q.Where("schema_id = ?", *schemaID)
	}
	var out types.BioinfoAnalysisField
	if err := q.Order("created_at DESC").First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *schemaFieldRepo) FindLineageField(dbc dbctx.Context, schemaID *uuid.UUID, propertyName string) (*types.LineageField, error) {
	name := strings.TrimSpace(propertyName)
	if name == "" {
		return nil, nil
	}
	q := dbc.DB(r.db).Where("LOWER(property_name) = LOWER(?)", name)
	if schemaID != nil {
		q = q.Where("schema_id = ?", *schemaID)
	}
	var out types.LineageField
	if err := q.Order("created_at DESC").First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
