package steps

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// CategoryValues is one category of a histogram aggregate expanded into the
// flat sample list a box plot consumes.
type CategoryValues struct {
	Category string    `json:"category"`
	Values   []float64 `json:"values"`
}

// BucketMeans holds parallel series: ascending bucket keys and the mean of
// the values stored under each key.
type BucketMeans struct {
	Based []int     `json:"based"`
	Cts   []float64 `json:"cts"`
}

// ExpandHistograms decodes {category: {value: count}} and repeats each numeric
// value count times. Keys that do not parse as finite numbers are skipped.
// Categories come back sorted, values in ascending order.
func ExpandHistograms(raw []byte) ([]CategoryValues, error) {
	var hist map[string]map[string]int
	if err := json.Unmarshal(raw, &hist); err != nil {
		return nil, fmt.Errorf("decode histogram aggregate: %w", err)
	}
	categories := make([]string, 0, len(hist))
	for k := range hist {
		categories = append(categories, k)
	}
	sort.Strings(categories)

	out := make([]CategoryValues, 0, len(categories))
	for _, cat := range categories {
		type bin struct {
			v float64
			n int
		}
		bins := make([]bin, 0, len(hist[cat]))
		for key, n := range hist[cat] {
			v, ok := parseFinite(key)
			if !ok || n <= 0 {
				continue
			}
			bins = append(bins, bin{v: v, n: n})
		}
		sort.Slice(bins, func(i, j int) bool { return bins[i].v < bins[j].v })

		values := []float64{}
		for _, b := range bins {
			for i := 0; i < b.n; i++ {
				values = append(values, b.v)
			}
		}
		out = append(out, CategoryValues{Category: cat, Values: values})
	}
	return out, nil
}

// MeanByBucket decodes {bucket: [values]} into BucketMeans. Buckets whose key
// is not an integer or that hold no values are left out.
func MeanByBucket(raw []byte) (BucketMeans, error) {
	var buckets map[string][]float64
	if err := json.Unmarshal(raw, &buckets); err != nil {
		return BucketMeans{}, fmt.Errorf("decode bucket aggregate: %w", err)
	}
	keys := make([]int, 0, len(buckets))
	byKey := make(map[int][]float64, len(buckets))
	for k, vals := range buckets {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || len(vals) == 0 {
			continue
		}
		if _, dup := byKey[n]; !dup {
			keys = append(keys, n)
		}
		byKey[n] = append(byKey[n], vals...)
	}
	sort.Ints(keys)

	out := BucketMeans{Based: make([]int, 0, len(keys)), Cts: make([]float64, 0, len(keys))}
	for _, k := range keys {
		out.Based = append(out.Based, k)
		out.Cts = append(out.Cts, mean(byKey[k]))
	}
	return out, nil
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
