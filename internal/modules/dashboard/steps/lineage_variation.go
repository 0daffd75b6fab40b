package steps

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Window is the half-open collection-date range [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// PeriodWindow covers the days days before the UTC day of now, excluding
// today.
func PeriodWindow(days int, now time.Time) Window {
	today := truncateDay(now)
	return Window{From: today.AddDate(0, 0, -days), To: today}
}

// YearWindow is [year-01-01, year-12-31). The last day of the year is
// excluded, matching the dashboard's historical default.
func YearWindow(year int) Window {
	return Window{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// WeekStart returns the Monday 00:00 UTC of t's week.
func WeekStart(t time.Time) time.Time {
	d := truncateDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LineageMatrix is the week by lineage pivot of sample counts. Percent[l][i]
// is lineage l's share of week i rounded to two decimals; Totals[i] is the
// number of samples in week i.
type LineageMatrix struct {
	Weeks    []string             `json:"weeks"`
	Lineages []string             `json:"lineages"`
	Counts   map[string][]int     `json:"counts"`
	Percent  map[string][]float64 `json:"percent"`
	Totals   []int                `json:"totals"`
}

// LineageVariation filters rows to w, sums samples per (lineage, week), fills
// absent cells with zero and normalises each week to percentages. A week
// whose total is zero gets 0 for every lineage.
func LineageVariation(rows []VariantRow, w Window) (LineageMatrix, error) {
	type cell struct {
		lineage string
		week    time.Time
	}
	sums := map[cell]int{}
	weekSet := map[time.Time]struct{}{}
	lineageSet := map[string]struct{}{}

	for _, r := range rows {
		day, err := time.Parse(dateLayout, strings.TrimSpace(r.CollectionDate))
		if err != nil {
			return LineageMatrix{}, fmt.Errorf("collection date %q: %w", r.CollectionDate, err)
		}
		if !w.Contains(day) {
			continue
		}
		week := WeekStart(day)
		sums[cell{r.Lineage, week}] += r.Samples
		weekSet[week] = struct{}{}
		lineageSet[r.Lineage] = struct{}{}
	}

	weeks := make([]time.Time, 0, len(weekSet))
	for wk := range weekSet {
		weeks = append(weeks, wk)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	lineages := make([]string, 0, len(lineageSet))
	for l := range lineageSet {
		lineages = append(lineages, l)
	}
	sort.Strings(lineages)

	out := LineageMatrix{
		Weeks:    make([]string, len(weeks)),
		Lineages: lineages,
		Counts:   make(map[string][]int, len(lineages)),
		Percent:  make(map[string][]float64, len(lineages)),
		Totals:   make([]int, len(weeks)),
	}
	for _, l := range lineages {
		out.Counts[l] = make([]int, len(weeks))
		out.Percent[l] = make([]float64, len(weeks))
	}

	for i, wk := range weeks {
		out.Weeks[i] = wk.Format(dateLayout)
		counts := make([]int, len(lineages))
		for j, l := range lineages {
			counts[j] = sums[cell{l, wk}]
			out.Counts[l][i] = counts[j]
			out.Totals[i] += counts[j]
		}
		for j, p := range Percentages(counts) {
			out.Percent[lineages[j]][i] = p
		}
	}
	return out, nil
}

// Percentages returns each count's share of the total with two decimals,
// using largest-remainder rounding so a non-zero total sums to exactly 100.
// Ties go to the earlier index. A zero total yields all zeros.
func Percentages(counts []int) []float64 {
	out := make([]float64, len(counts))
	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}
	if total == 0 {
		return out
	}

	const scale = 10000 // hundredths of a percent
	hundredths := make([]int, len(counts))
	remainders := make([]int, len(counts))
	assigned := 0
	for i, c := range counts {
		if c <= 0 {
			continue
		}
		hundredths[i] = c * scale / total
		remainders[i] = c * scale % total
		assigned += hundredths[i]
	}

	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return remainders[order[a]] > remainders[order[b]] })
	for k := 0; assigned < scale && k < len(order); k++ {
		if remainders[order[k]] == 0 {
			break
		}
		hundredths[order[k]]++
		assigned++
	}

	for i, h := range hundredths {
		out[i] = float64(h) / 100
	}
	return out
}
