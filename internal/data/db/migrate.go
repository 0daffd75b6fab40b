package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureIndexes(db)
}

// EnsureIndexes creates the expression indexes the case-insensitive lookups
// rely on. Both postgres and sqlite accept this syntax.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_sample_sequencing_sample_id_lower ON sample (LOWER(sequencing_sample_id))`,
		`CREATE INDEX IF NOT EXISTS idx_bioinfo_field_property_lower ON bioinfo_analysis_field (schema_id, LOWER(property_name))`,
		`CREATE INDEX IF NOT EXISTS idx_lineage_field_property_lower ON lineage_field (schema_id, LOWER(property_name))`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}
