package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Sample       repos.SampleRepo
	BioinfoValue repos.BioinfoAnalysisValueRepo
	LineageValue repos.LineageValueRepo
	Schema       repos.SchemaRepo
	SchemaField  repos.SchemaFieldRepo
	GraphicJSON  repos.GraphicJSONRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Sample:       repos.NewSampleRepo(db, log),
		BioinfoValue: repos.NewBioinfoAnalysisValueRepo(db, log),
		LineageValue: repos.NewLineageValueRepo(db, log),
		Schema:       repos.NewSchemaRepo(db, log),
		SchemaField:  repos.NewSchemaFieldRepo(db, log),
		GraphicJSON:  repos.NewGraphicJSONRepo(db, log),
	}
}
