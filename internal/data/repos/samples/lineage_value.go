package samples

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// LineageDateRow is one lineage value with its sample's collection date.
type LineageDateRow struct {
	Lineage              string
	CollectionSampleDate *time.Time
}

type LineageValueRepo interface {
	Create(dbc dbctx.Context, rows []*types.LineageValue) ([]*types.LineageValue, error)
	GetBySampleID(dbc dbctx.Context, sampleID uuid.UUID) ([]*types.LineageValue, error)
	ListLineageCollectionDates(dbc dbctx.Context, propertyName string) ([]LineageDateRow, error)
}

type lineageValueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLineageValueRepo(db *gorm.DB, baseLog *logger.Logger) LineageValueRepo {
	return &lineageValueRepo{db: db, log: baseLog.With("repo", "LineageValueRepo")}
}

func (r *lineageValueRepo) Create(dbc dbctx.Context, rows []*types.LineageValue) ([]*types.LineageValue, error) {
	if len(rows) == 0 {
		return []*types.LineageValue{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lineageValueRepo) GetBySampleID(dbc dbctx.Context, sampleID uuid.UUID) ([]*types.LineageValue, error) {
	var out []*types.LineageValue
	if sampleID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("sample_id = ?", sampleID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListLineageCollectionDates returns one row per stored value of the given
// lineage field whose sample has a collection date.
func (r *lineageValueRepo) ListLineageCollectionDates(dbc dbctx.Context, propertyName string) ([]LineageDateRow, error) {
	var out []LineageDateRow
	if strings.TrimSpace(propertyName) == "" {
		return out, nil
	}
	err := dbc.DB(r.db).
		Table("lineage_value AS v").
		Select("v.value AS lineage, s.collection_sample_date AS collection_sample_date").
		Joins("JOIN lineage_field AS f ON f.id = v.lineage_field_id").
		Joins("JOIN sample AS s ON s.id = v.sample_id").
		Where("LOWER(f.property_name) = LOWER(?) AND s.collection_sample_date IS NOT NULL AND v.value <> ''", propertyName).
		Order("s.collection_sample_date ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
