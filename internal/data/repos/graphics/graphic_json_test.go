package graphics

import (
	"context"
	"testing"

	"github.com/yungbote/seqmeta-backend/internal/data/repos/testutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

func TestGraphicJSONRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewGraphicJSONRepo(db, testutil.Logger(t))

	got, err := repo.Get(dbc, "variant_graphic_data")
	if err != nil || got != nil {
		t.Fatalf("Get (missing): row=%v err=%v", got, err)
	}

	if err := repo.Upsert(dbc, "variant_graphic_data", []byte(`[]`)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, "variant_graphic_data", []byte(`[{"lineage":"P.1"}]`)); err != nil {
		t.Fatalf("Upsert (overwrite): %v", err)
	}

	got, err = repo.Get(dbc, "variant_graphic_data")
	if err != nil || got == nil {
		t.Fatalf("Get: row=%v err=%v", got, err)
	}
	if string(got.Data) != `[{"lineage":"P.1"}]` {
		t.Fatalf("Get: data=%s", string(got.Data))
	}

	names, err := repo.ListNames(dbc)
	if err != nil || len(names) != 1 {
		t.Fatalf("ListNames: names=%v err=%v", names, err)
	}

	if err := repo.Delete(dbc, "variant_graphic_data"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.Get(dbc, "variant_graphic_data")
	if err != nil || got != nil {
		t.Fatalf("Get after delete: row=%v err=%v", got, err)
	}
}
