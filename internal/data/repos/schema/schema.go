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

type SchemaRepo interface {
	// Create inserts the schema together with its field rows.
	Create(dbc dbctx.Context, s *types.Schema) (*types.Schema, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Schema, error)
	GetByNameVersion(dbc dbctx.Context, name, version string) (*types.Schema, error)
	GetDefault(dbc dbctx.Context, name string) (*types.Schema, error)
	List(dbc dbctx.Context) ([]*types.Schema, error)
	ClearDefault(dbc dbctx.Context, name string) error
}

type schemaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchemaRepo(db *gorm.DB, baseLog *logger.Logger) SchemaRepo {
	return &schemaRepo{db: db, log: baseLog.With("repo", "SchemaRepo")}
}

func (r *schemaRepo) Create(dbc dbctx.Context, s *types.Schema) (*types.Schema, error) {
	if s == nil {
		return nil, errors.New("schema is nil")
	}
	if err := dbc.DB(r.db).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *schemaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Schema, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Schema
	err := dbc.DB(r.db).
		Preload("BioinfoFields").
		Preload("LineageFields").
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *schemaRepo) GetByNameVersion(dbc dbctx.Context, name, version string) (*types.Schema, error) {
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if name == "" || version == "" {
		return nil, nil
	}
	var out types.Schema
	err := dbc.DB(r.db).
		Preload("BioinfoFields").
		Preload("LineageFields").
		Where("name = ? AND version = ?", name, version).
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// GetDefault returns the schema flagged as default. An empty name matches any
// schema name; the most recently created default wins.
func (r *schemaRepo) GetDefault(dbc dbctx.Context, name string) (*types.Schema, error) {
	q := dbc.DB(r.db).
		Preload("BioinfoFields").
		Preload("LineageFields").
		Where("is_default = ?", true)
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("name = ?", name)
	}
	var out types.Schema
	if err := q.Order("created_at DESC").First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *schemaRepo) List(dbc dbctx.Context) ([]*types.Schema, error) {
	var out []*types.Schema
	if err := dbc.DB(r.db).
		Order("name ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schemaRepo) ClearDefault(dbc dbctx.Context, name string) error {
	q := dbc.DB(r.db).Model(&types.Schema{}).Where("is_default = ?", true)
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("name = ?", name)
	}
	return q.Update("is_default", false).Error
}
