package samples

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxValueLength bounds stored analysis and lineage values.
const MaxValueLength = 240

// BioinfoAnalysisValue is one reported bioinformatics result. Rows are
// append-only.
type BioinfoAnalysisValue struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SampleID               uuid.UUID `gorm:"type:uuid;not null;index" json:"sample_id"`
	BioinfoAnalysisFieldID uuid.UUID `gorm:"type:uuid;not null;index" json:"bioinfo_analysis_field_id"`
	Value                  string    `gorm:"column:value;size:240;not null" json:"value"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
}

func (BioinfoAnalysisValue) TableName() string { return "bioinfo_analysis_value" }

func (v *BioinfoAnalysisValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// LineageValue is one reported lineage/variant classification value.
type LineageValue struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SampleID       uuid.UUID `gorm:"type:uuid;not null;index" json:"sample_id"`
	LineageFieldID uuid.UUID `gorm:"type:uuid;not null;index" json:"lineage_field_id"`
	Value          string    `gorm:"column:value;size:240;not null" json:"value"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (LineageValue) TableName() string { return "lineage_value" }

func (v *LineageValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
