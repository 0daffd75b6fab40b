package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

const (
	LineageNameField = "lineage_name"

	dateLayout = "2006-01-02"
)

// VariantRow is the number of samples of one lineage collected on one day.
type VariantRow struct {
	Lineage        string `json:"lineage"`
	CollectionDate string `json:"collection_date"`
	Samples        int    `json:"samples"`
}

type LineageDateSource interface {
	ListLineageCollectionDates(dbc dbctx.Context, propertyName string) ([]repos.LineageDateRow, error)
}

// VariantGraphicData counts samples per (lineage, collection day), sorted by
// day then lineage.
func VariantGraphicData(ctx context.Context, src LineageDateSource) ([]byte, error) {
	rows, err := src.ListLineageCollectionDates(dbctx.Context{Ctx: ctx}, LineageNameField)
	if err != nil {
		return nil, fmt.Errorf("list lineage collection dates: %w", err)
	}
	type key struct{ lineage, day string }
	counts := map[key]int{}
	for _, r := range rows {
		lineage := strings.TrimSpace(r.Lineage)
		if lineage == "" || r.CollectionSampleDate == nil {
			continue
		}
		counts[key{lineage, r.CollectionSampleDate.UTC().Format(dateLayout)}]++
	}
	out := make([]VariantRow, 0, len(counts))
	for k, n := range counts {
		out = append(out, VariantRow{Lineage: k.lineage, CollectionDate: k.day, Samples: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CollectionDate != out[j].CollectionDate {
			return out[i].CollectionDate < out[j].CollectionDate
		}
		return out[i].Lineage < out[j].Lineage
	})
	return json.Marshal(out)
}

func DecodeVariantRows(raw []byte) ([]VariantRow, error) {
	var rows []VariantRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode variant aggregate: %w", err)
	}
	return rows, nil
}
