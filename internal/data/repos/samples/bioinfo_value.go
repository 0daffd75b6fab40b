package samples

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// FieldCtRow is one stored value of a bioinformatics field together with the
// owning sample's diagnostic PCR Ct value.
type FieldCtRow struct {
	Value   string
	CtValue string
}

type BioinfoAnalysisValueRepo interface {
	Create(dbc dbctx.Context, rows []*types.BioinfoAnalysisValue) ([]*types.BioinfoAnalysisValue, error)
	GetBySampleID(dbc dbctx.Context, sampleID uuid.UUID) ([]*types.BioinfoAnalysisValue, error)
	ListValuesByFieldName(dbc dbctx.Context, sampleID uuid.UUID, propertyName string) ([]string, error)
	ListFieldValuesWithCt(dbc dbctx.Context, propertyName string) ([]FieldCtRow, error)
}

type bioinfoAnalysisValueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBioinfoAnalysisValueRepo(db *gorm.DB, baseLog *logger.Logger) BioinfoAnalysisValueRepo {
	return &bioinfoAnalysisValueRepo{db: db, log: baseLog.With("repo", "BioinfoAnalysisValueRepo")}
}

func (r *bioinfoAnalysisValueRepo) Create(dbc dbctx.Context, rows []*types.BioinfoAnalysisValue) ([]*types.BioinfoAnalysisValue, error) {
	if len(rows) == 0 {
		return []*types.BioinfoAnalysisValue{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *bioinfoAnalysisValueRepo) GetBySampleID(dbc dbctx.Context, sampleID uuid.UUID) ([]*types.BioinfoAnalysisValue, error) {
	var out []*types.BioinfoAnalysisValue
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

func (r *bioinfoAnalysisValueRepo) ListValuesByFieldName(dbc dbctx.Context, sampleID uuid.UUID, propertyName string) ([]string, error) {
	out := []string{}
	if sampleID == uuid.Nil || strings.TrimSpace(propertyName) == "" {
		return out, nil
	}
	err := dbc.DB(r.db).
		Table("bioinfo_analysis_value AS v").
		Joins("JOIN bioinfo_analysis_field AS f ON f.id = v.bioinfo_analysis_field_id").
		Where("v.sample_id = ? AND LOWER(f.property_name) = LOWER(?)", sampleID, propertyName).
		Order("v.created_at ASC").
		Pluck("v.value", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bioinfoAnalysisValueRepo) ListFieldValuesWithCt(dbc dbctx.Context, propertyName string) ([]FieldCtRow, error) {
	var out []FieldCtRow
	if strings.TrimSpace(propertyName) == "" {
		return out, nil
	}
	err := dbc.DB(r.db).
		Table("bioinfo_analysis_value AS v").
		Select("v.value AS value, s.diagnostic_pcr_ct_value_1 AS ct_value").
		Joins("JOIN bioinfo_analysis_field AS f ON f.id = v.bioinfo_analysis_field_id").
		Joins("JOIN sample AS s ON s.id = v.sample_id").
		Where("LOWER(f.property_name) = LOWER(?) AND s.diagnostic_pcr_ct_value_1 <> ''", propertyName).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
