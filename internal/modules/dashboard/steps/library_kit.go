package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

type LibraryKitCtSource interface {
	ListLibraryKitCt(dbc dbctx.Context) ([]repos.LibraryKitCtRow, error)
}

// LibraryKitPCR1 counts samples per (library preparation kit, Ct value) and
// returns {kit: {ct: count}} JSON.
func LibraryKitPCR1(ctx context.Context, src LibraryKitCtSource) ([]byte, error) {
	rows, err := src.ListLibraryKitCt(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list library kit ct values: %w", err)
	}
	hist := map[string]map[string]int{}
	for _, r := range rows {
		kit := strings.TrimSpace(r.LibraryPreparationKit)
		ct := strings.TrimSpace(r.DiagnosticPCRCtValue1)
		if kit == "" || ct == "" {
			continue
		}
		if hist[kit] == nil {
			hist[kit] = map[string]int{}
		}
		hist[kit][ct]++
	}
	return json.Marshal(hist)
}
