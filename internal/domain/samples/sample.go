package samples

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sample is a sequencing submission. It owns the bioinformatics and lineage
// values reported for it; those rows go away with the sample.
type Sample struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SequencingSampleID string    `gorm:"column:sequencing_sample_id;not null;index" json:"sequencing_sample_id"`
	Project            string    `gorm:"column:project;index" json:"project"`

	CollectionSampleDate *time.Time `gorm:"column:collection_sample_date;type:date;index" json:"collection_sample_date,omitempty"`

	LibraryPreparationKit        string `gorm:"column:library_preparation_kit" json:"library_preparation_kit"`
	SequencingInstrumentPlatform string `gorm:"column:sequencing_instrument_platform" json:"sequencing_instrument_platform"`
	SequencingInstrumentModel    string `gorm:"column:sequencing_instrument_model" json:"sequencing_instrument_model"`
	ReadLength                   string `gorm:"column:read_length" json:"read_length"`
	DiagnosticPCRCtValue1        string `gorm:"column:diagnostic_pcr_ct_value_1" json:"diagnostic_pcr_ct_value_1"`

	// Submitted fields without a dedicated column.
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	SubmittedByUserID *uuid.UUID `gorm:"type:uuid;column:submitted_by_user_id;index" json:"submitted_by_user_id,omitempty"`

	BioinfoValues []*BioinfoAnalysisValue `gorm:"foreignKey:SampleID;constraint:OnDelete:CASCADE" json:"bioinfo_values,omitempty"`
	LineageValues []*LineageValue         `gorm:"foreignKey:SampleID;constraint:OnDelete:CASCADE" json:"lineage_values,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Sample) TableName() string { return "sample" }

func (s *Sample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
