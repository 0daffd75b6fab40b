package graphics

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// GraphicJSONRepo persists precomputed chart datasets keyed by graphic name.
type GraphicJSONRepo interface {
	Get(dbc dbctx.Context, name string) (*types.GraphicJSONData, error)
	Upsert(dbc dbctx.Context, name string, data []byte) error
	Delete(dbc dbctx.Context, name string) error
	ListNames(dbc dbctx.Context) ([]string, error)
}

type graphicJSONRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGraphicJSONRepo(db *gorm.DB, baseLog *logger.Logger) GraphicJSONRepo {
	return &graphicJSONRepo{db: db, log: baseLog.With("repo", "GraphicJSONRepo")}
}

func (r *graphicJSONRepo) Get(dbc dbctx.Context, name string) (*types.GraphicJSONData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var out types.GraphicJSONData
	if err := dbc.DB(r.db).Where("name = ?", name).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *graphicJSONRepo) Upsert(dbc dbctx.Context, name string, data []byte) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("graphic name is required")
	}
	now := time.Now().UTC()
	row := &types.GraphicJSONData{
		Name:      name,
		Data:      datatypes.JSON(data),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(row).Error
}

func (r *graphicJSONRepo) Delete(dbc dbctx.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return dbc.DB(r.db).Where("name = ?", name).Delete(&types.GraphicJSONData{}).Error
}

func (r *graphicJSONRepo) ListNames(dbc dbctx.Context) ([]string, error) {
	out := []string{}
	if err := dbc.DB(r.db).
		Model(&types.GraphicJSONData{}).
		Order("name ASC").
		Pluck("name", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
