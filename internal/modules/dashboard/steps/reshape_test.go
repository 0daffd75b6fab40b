package steps

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandHistograms(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []CategoryValues
	}{
		{
			name: "non_numeric_key_skipped",
			raw:  `{"kit": {"1.0": 2, "bad": 5}}`,
			want: []CategoryValues{{Category: "kit", Values: []float64{1.0, 1.0}}},
		},
		{
			name: "categories_sorted_values_ascending",
			raw:  `{"b": {"30": 1, "20.5": 2}, "a": {"NaN": 3, "18": 1}}`,
			want: []CategoryValues{
				{Category: "a", Values: []float64{18}},
				{Category: "b", Values: []float64{20.5, 20.5, 30}},
			},
		},
		{
			name: "empty_category_kept",
			raw:  `{"kit": {"x": 1}}`,
			want: []CategoryValues{{Category: "kit", Values: []float64{}}},
		},
		{
			name: "empty",
			raw:  `{}`,
			want: []CategoryValues{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandHistograms([]byte(tc.raw))
			if err != nil {
				t.Fatalf("ExpandHistograms: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ExpandHistograms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandHistogramsLengthMatchesCounts(t *testing.T) {
	got, err := ExpandHistograms([]byte(`{"k": {"1": 3, "2.5": 4, "oops": 9, "-1": 2}}`))
	if err != nil {
		t.Fatalf("ExpandHistograms: %v", err)
	}
	if len(got) != 1 || len(got[0].Values) != 9 {
		t.Fatalf("want 9 values, got %+v", got)
	}
}

func TestExpandHistogramsRejectsMalformed(t *testing.T) {
	if _, err := ExpandHistograms([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMeanByBucket(t *testing.T) {
	got, err := MeanByBucket([]byte(`{"200000": [20, 30], "0": [18], "100000": [], "x": [1]}`))
	if err != nil {
		t.Fatalf("MeanByBucket: %v", err)
	}
	want := BucketMeans{Based: []int{0, 200000}, Cts: []float64{18, 25}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MeanByBucket mismatch (-want +got):\n%s", diff)
	}
}
