package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// OpenSQLite opens a single-connection sqlite database, used for local runs
// and tests. Foreign keys are switched on so sample deletes cascade.
func OpenSQLite(path string, logg *logger.Logger) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	dsn := "file::memory:?_foreign_keys=on"
	if path != ":memory:" {
		dsn = "file:" + path + "?_foreign_keys=on"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if logg != nil {
		logg.Info("Opened sqlite database", "path", path)
	}
	return db, nil
}
