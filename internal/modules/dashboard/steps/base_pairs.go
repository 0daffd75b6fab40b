package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/yungbote/seqmeta-backend/internal/data/repos"
	"github.com/yungbote/seqmeta-backend/internal/platform/dbctx"
)

const (
	BasePairsField = "number_of_base_pairs_sequenced"

	DefaultBasePairsBucket int64 = 100000
)

type FieldCtSource interface {
	ListFieldValuesWithCt(dbc dbctx.Context, propertyName string) ([]repos.FieldCtRow, error)
}

// CtByBasePairs groups Ct values by the floor of the sample's sequenced base
// pair count to a multiple of bucket and returns {bucket: [ct...]} JSON.
// Rows whose count or Ct does not parse are ignored.
func CtByBasePairs(ctx context.Context, src FieldCtSource, bucket int64) ([]byte, error) {
	if bucket <= 0 {
		bucket = DefaultBasePairsBucket
	}
	rows, err := src.ListFieldValuesWithCt(dbctx.Context{Ctx: ctx}, BasePairsField)
	if err != nil {
		return nil, fmt.Errorf("list %s values: %w", BasePairsField, err)
	}
	out := map[string][]float64{}
	for _, r := range rows {
		bp, ok := parseFinite(r.Value)
		if !ok || bp < 0 {
			continue
		}
		ct, ok := parseFinite(r.CtValue)
		if !ok {
			continue
		}
		key := strconv.FormatInt(BucketOf(bp, bucket), 10)
		out[key] = append(out[key], ct)
	}
	return json.Marshal(out)
}

func BucketOf(v float64, bucket int64) int64 {
	return int64(math.Floor(v/float64(bucket))) * bucket
}
