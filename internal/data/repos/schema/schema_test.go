package schema

import (
	"context"
	"testing"

	"github.com/yungbote/seqmeta-backend/internal/data/repos/testutil"
	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

func TestSchemaRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	logg := testutil.Logger(t)

	repo := NewSchemaRepo(db, logg)
	created, err := repo.Create(dbc, &types.Schema{
		Name:      "relecov",
		Version:   "1.0.0",
		IsDefault: true,
		BioinfoFields: []*types.BioinfoAnalysisField{
			{PropertyName: "analysis_date"},
			{PropertyName: "number_of_base_pairs_sequenced"},
		},
		LineageFields: []*types.LineageField{{PropertyName: "lineage_name"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByNameVersion(dbc, "relecov", "1.0.0")
	if err != nil {
		t.Fatalf("GetByNameVersion: %v", err)
	}
	if got == nil || got.ID != created.ID || len(got.BioinfoFields) != 2 || len(got.LineageFields) != 1 {
		t.Fatalf("GetByNameVersion: unexpected %+v", got)
	}

	def, err := repo.GetDefault(dbc, "")
	if err != nil || def == nil || def.ID != created.ID {
		t.Fatalf("GetDefault: schema=%v err=%v", def, err)
	}

	if err := repo.ClearDefault(dbc, "relecov"); err != nil {
		t.Fatalf("ClearDefault: %v", err)
	}
	def, err = repo.GetDefault(dbc, "relecov")
	if err != nil || def != nil {
		t.Fatalf("GetDefault after clear: schema=%v err=%v", def, err)
	}

	list, err := repo.List(dbc)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: n=%d err=%v", len(list), err)
	}

	fields := NewSchemaFieldRepo(db, logg)
	bf, err := fields.FindBioinfoField(dbc, nil, "Analysis_Date")
	if err != nil || bf == nil || bf.PropertyName != "analysis_date" {
		t.Fatalf("FindBioinfoField: field=%v err=%v", bf, err)
	}
	lf, err := fields.FindLineageField(dbc, &created.ID, "LINEAGE_NAME")
	if err != nil || lf == nil {
		t.Fatalf("FindLineageField: field=%v err=%v", lf, err)
	}
	none, err := fields.FindLineageField(dbc, nil, "analysis_date")
	if err != nil || none != nil {
		t.Fatalf("FindLineageField (bioinfo name): field=%v err=%v", none, err)
	}
}
