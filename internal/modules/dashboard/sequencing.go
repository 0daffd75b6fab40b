package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/plotly"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/steps"
)

// StatsRow is one (label, count) line of a LIMS statistics table.
type StatsRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type StatsTable struct {
	Columns [2]string  `json:"columns"`
	Rows    []StatsRow `json:"rows"`
}

func (t StatsTable) plotly() plotly.Table {
	out := plotly.Table{Columns: t.Columns}
	for _, r := range t.Rows {
		out.Labels = append(out.Labels, r.Label)
		out.Values = append(out.Values, float64(r.Count))
	}
	return out
}

// FetchSequencingData asks the LIMS for field counts in the configured
// project and returns them as a table sorted by label.
func (u Usecases) FetchSequencingData(ctx context.Context, field string, columns [2]string) (StatsTable, error) {
	if u.deps.Stats == nil {
		return StatsTable{}, ErrStatsUnavailable
	}
	start := time.Now()
	counts, err := u.deps.Stats.FetchStats(ctx, u.deps.Config.Project, field)
	u.deps.Metrics.ObserveLIMS(field, time.Since(start), err)
	if err != nil {
		return StatsTable{}, err
	}
	table := StatsTable{Columns: columns, Rows: make([]StatsRow, 0, len(counts))}
	for label, n := range counts {
		table.Rows = append(table.Rows, StatsRow{Label: label, Count: n})
	}
	sort.Slice(table.Rows, func(i, j int) bool { return table.Rows[i].Label < table.Rows[j].Label })
	return table, nil
}

type limsChart struct {
	key     string
	field   string
	columns [2]string
	opts    plotly.Options
}

var limsCharts = []limsChart{
	{
		key:     "instrument_platform",
		field:   "sequencing_instrument_platform",
		columns: [2]string{"instrument_platform", "number"},
		opts:    plotly.Options{Title: "Instrument platform", Height: 400},
	},
	{
		key:     "instrument_model",
		field:   "sequencing_instrument_model",
		columns: [2]string{"instrument_model", "number"},
		opts:    plotly.Options{Title: "Instrument model", Height: 400},
	},
	{
		key:     "library_preparation",
		field:   "library_preparation_kit",
		columns: [2]string{"library_preparation", "number"},
		opts:    plotly.Options{Title: "Library preparation", Height: 400},
	},
	{
		key:     "read_length",
		field:   "read_length",
		columns: [2]string{"read_length", "number"},
		opts:    plotly.Options{Title: "Read length", Height: 400, Colors: "#1aff8c"},
	},
}

// SequencingGraphics builds the sequencing dashboard figures keyed by chart.
// The LIMS queries run concurrently; the first error cancels the rest and is
// returned without building any figure.
func (u Usecases) SequencingGraphics(ctx context.Context) (map[string]plotly.Figure, error) {
	tables := make([]StatsTable, len(limsCharts))
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range limsCharts {
		g.Go(func() error {
			t, err := u.FetchSequencingData(gctx, ch.field, ch.columns)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", ch.field, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kitCts, err := u.Graphic(ctx, GraphicLibraryKitPCR1, ShapeListOfDict)
	if err != nil {
		return nil, err
	}
	bpCts, err := u.Graphic(ctx, GraphicCtNumberOfBasePairsSequenced, ShapeDict)
	if err != nil {
		return nil, err
	}

	figures := make(map[string]plotly.Figure, len(limsCharts)+2)
	yaxis := plotly.Axis{Title: &plotly.Title{Text: "Number of samples"}}
	for i, ch := range limsCharts {
		figures[ch.key] = plotly.BarGraphic(tables[i].plotly(), "", yaxis, ch.opts)
	}

	groups := []plotly.Group{}
	for _, cv := range kitCts.([]steps.CategoryValues) {
		groups = append(groups, plotly.Group{Name: cv.Category, Values: cv.Values})
	}
	figures["cts_library"] = plotly.BoxPlotGraphic(groups, plotly.Options{
		Title:  "Boxplot Cts / Library preparation kit",
		Height: 400,
		Width:  420,
	})

	means := bpCts.(steps.BucketMeans)
	figures["number_of_base"] = plotly.LineGraphic(means.Based, means.Cts, plotly.Options{
		Title:  "CTs / Base pairs sequenced",
		Height: 350,
		Width:  300,
		XTitle: "Number of base pairs sequenced",
		YTitle: "PCR CT 1",
	})
	return figures, nil
}
