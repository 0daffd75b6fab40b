package dashboard

import (
	"context"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

// DBStore is the durable cache tier backed by the graphic_json_data table.
type DBStore struct {
	Repo repos.GraphicJSONRepo
}

func NewDBStore(repo repos.GraphicJSONRepo) *DBStore {
	return &DBStore{Repo: repo}
}

func (s *DBStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	row, err := s.Repo.Get(dbctx.Context{Ctx: ctx}, name)
	if err != nil || row == nil {
		return nil, false, err
	}
	return []byte(row.Data), true, nil
}

func (s *DBStore) Set(ctx context.Context, name string, data []byte) error {
	return s.Repo.Upsert(dbctx.Context{Ctx: ctx}, name, data)
}

func (s *DBStore) Delete(ctx context.Context, name string) error {
	return s.Repo.Delete(dbctx.Context{Ctx: ctx}, name)
}

func (s *DBStore) StoredNames(ctx context.Context) ([]string, error) {
	return s.Repo.ListNames(dbctx.Context{Ctx: ctx})
}
