package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	"github.com/yungbote/seqmeta-backend/internal/data/repos/testutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

type testEnv struct {
	ctx       context.Context
	tx        *gorm.DB
	schemas   SchemaService
	ingestion IngestionService
	samples   SampleService
	auth      AuthService
	bioinfo   repos.BioinfoAnalysisValueRepo
	lineage   repos.LineageValueRepo
}

// newTestEnv wires every service onto one rolled-back transaction.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)

	sampleRepo := repos.NewSampleRepo(tx, log)
	bioinfoRepo := repos.NewBioinfoAnalysisValueRepo(tx, log)
	lineageRepo := repos.NewLineageValueRepo(tx, log)
	schemas := NewSchemaService(tx, log, repos.NewSchemaRepo(tx, log), "")

	return &testEnv{
		ctx:     context.Background(),
		tx:      tx,
		schemas: schemas,
		ingestion: NewIngestionService(tx, log, nil, schemas,
			sampleRepo,
			repos.NewSchemaFieldRepo(tx, log),
			bioinfoRepo,
			lineageRepo,
		),
		samples: NewSampleService(tx, log, sampleRepo, bioinfoRepo),
		auth:    NewAuthService(tx, log, repos.NewUserRepo(tx, log), "test-secret", 0),
		bioinfo: bioinfoRepo,
		lineage: lineageRepo,
	}
}

func dbcOf(env *testEnv) dbctx.Context {
	return dbctx.Context{Ctx: env.ctx, Tx: env.tx}
}
