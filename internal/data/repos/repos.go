package repos

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/data/repos/graphics"
	"github.com/yungbote/seqmeta-backend/internal/data/repos/samples"
	"github.com/yungbote/seqmeta-backend/internal/data/repos/schema"
	"github.com/yungbote/seqmeta-backend/internal/data/repos/user"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type SampleRepo = samples.SampleRepo
type BioinfoAnalysisValueRepo = samples.BioinfoAnalysisValueRepo
type LineageValueRepo = samples.LineageValueRepo

type SchemaRepo = schema.SchemaRepo
type SchemaFieldRepo = schema.SchemaFieldRepo

type GraphicJSONRepo = graphics.GraphicJSONRepo

type LibraryKitCtRow = samples.LibraryKitCtRow
type FieldCtRow = samples.FieldCtRow
type LineageDateRow = samples.LineageDateRow

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	return samples.NewSampleRepo(db, baseLog)
}
func NewBioinfoAnalysisValueRepo(db *gorm.DB, baseLog *logger.Logger) BioinfoAnalysisValueRepo {
	return samples.NewBioinfoAnalysisValueRepo(db, baseLog)
}
func NewLineageValueRepo(db *gorm.DB, baseLog *logger.Logger) LineageValueRepo {
	return samples.NewLineageValueRepo(db, baseLog)
}

func NewSchemaRepo(db *gorm.DB, baseLog *logger.Logger) SchemaRepo {
	return schema.NewSchemaRepo(db, baseLog)
}
func NewSchemaFieldRepo(db *gorm.DB, baseLog *logger.Logger) SchemaFieldRepo {
	return schema.NewSchemaFieldRepo(db, baseLog)
}

func NewGraphicJSONRepo(db *gorm.DB, baseLog *logger.Logger) GraphicJSONRepo {
	return graphics.NewGraphicJSONRepo(db, baseLog)
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either postgres or sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
