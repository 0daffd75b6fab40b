package samples

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// LibraryKitCtRow pairs a sample's library preparation kit with its first
// diagnostic PCR Ct value, both as submitted.
type LibraryKitCtRow struct {
	LibraryPreparationKit string `gorm:"column:library_preparation_kit"`
	DiagnosticPCRCtValue1 string `gorm:"column:diagnostic_pcr_ct_value_1"`
}

type SampleRepo interface {
	Create(dbc dbctx.Context, rows []*types.Sample) ([]*types.Sample, error)
	GetLatestBySequencingID(dbc dbctx.Context, sequencingSampleID string) (*types.Sample, error)
	ExistsBySequencingID(dbc dbctx.Context, sequencingSampleID string) (bool, error)
	ListBySequencingID(dbc dbctx.Context, sequencingSampleID string) ([]*types.Sample, error)
	ListLibraryKitCt(dbc dbctx.Context) ([]LibraryKitCtRow, error)
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type sampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	return &sampleRepo{db: db, log: baseLog.With("repo", "SampleRepo")}
}

func (r *sampleRepo) Create(dbc dbctx.Context, rows []*types.Sample) ([]*types.Sample, error) {
	if len(rows) == 0 {
		return []*types.Sample{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetLatestBySequencingID matches case-insensitively. When several samples
// share an identifier the most recently created one wins.
func (r *sampleRepo) GetLatestBySequencingID(dbc dbctx.Context, sequencingSampleID string) (*types.Sample, error) {
	id := strings.TrimSpace(sequencingSampleID)
	if id == "" {
		return nil, nil
	}
	var row types.Sample
	err := dbc.DB(r.db).
		Where("LOWER(sequencing_sample_id) = LOWER(?)", id).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *sampleRepo) ExistsBySequencingID(dbc dbctx.Context, sequencingSampleID string) (bool, error) {
	id := strings.TrimSpace(sequencingSampleID)
	if id == "" {
		return false, nil
	}
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Sample{}).
		Where("LOWER(sequencing_sample_id) = LOWER(?)", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListBySequencingID returns every sample stored under the identifier,
// matched case-insensitively, oldest first.
func (r *sampleRepo) ListBySequencingID(dbc dbctx.Context, sequencingSampleID string) ([]*types.Sample, error) {
	var out []*types.Sample
	id := strings.TrimSpace(sequencingSampleID)
	if id == "" {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("LOWER(sequencing_sample_id) = LOWER(?)", id).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sampleRepo) ListLibraryKitCt(dbc dbctx.Context) ([]LibraryKitCtRow, error) {
	var out []LibraryKitCtRow
	err := dbc.DB(r.db).
		Model(&types.Sample{}).
		Select("library_preparation_kit, diagnostic_pcr_ct_value_1").
		Where("library_preparation_kit <> '' AND diagnostic_pcr_ct_value_1 <> ''").
		Order("library_preparation_kit ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FullDeleteByIDs removes the samples and their analysis and lineage values.
// Values are deleted explicitly so drivers without enforced foreign keys
// leave no orphans. Run it inside a transaction.
func (r *sampleRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := dbc.DB(r.db)
	if err := db.Where("sample_id IN ?", ids).Delete(&types.BioinfoAnalysisValue{}).Error; err != nil {
		return err
	}
	if err := db.Where("sample_id IN ?", ids).Delete(&types.LineageValue{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&types.Sample{}).Error
}
