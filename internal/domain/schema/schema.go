package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schema is one versioned metadata schema. Its field tables decide which
// submitted properties are bioinformatics results and which are lineage data.
type Schema struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:idx_schema_name_version" json:"name"`
	Version     string    `gorm:"column:version;not null;uniqueIndex:idx_schema_name_version" json:"version"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`

	BioinfoFields []*BioinfoAnalysisField `gorm:"foreignKey:SchemaID;constraint:OnDelete:CASCADE" json:"bioinfo_fields,omitempty"`
	LineageFields []*LineageField         `gorm:"foreignKey:SchemaID;constraint:OnDelete:CASCADE" json:"lineage_fields,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Schema) TableName() string { return "schema" }

func (s *Schema) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type BioinfoAnalysisField struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchemaID     uuid.UUID `gorm:"type:uuid;not null;index:idx_bioinfo_field_schema_property" json:"schema_id"`
	PropertyName string    `gorm:"column:property_name;not null;index:idx_bioinfo_field_schema_property" json:"property_name"`
	Label        string    `gorm:"column:label" json:"label,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (BioinfoAnalysisField) TableName() string { return "bioinfo_analysis_field" }

func (f *BioinfoAnalysisField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type LineageField struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchemaID     uuid.UUID `gorm:"type:uuid;not null;index:idx_lineage_field_schema_property" json:"schema_id"`
	PropertyName string    `gorm:"column:property_name;not null;index:idx_lineage_field_schema_property" json:"property_name"`
	Label        string    `gorm:"column:label" json:"label,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (LineageField) TableName() string { return "lineage_field" }

func (f *LineageField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
