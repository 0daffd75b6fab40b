package plotly

// Table is a two-column (label, value) dataset. Columns names the columns for
// axis titles.
type Table struct {
	Columns [2]string
	Labels  []string
	Values  []float64
}

// BarGraphic draws one bar per table row. legend names the trace; yaxis
// overrides the value axis.
func BarGraphic(t Table, legend string, yaxis Axis, opts Options) Figure {
	trace := Trace{
		Type: "bar",
		Name: legend,
		X:    nonNilStrings(t.Labels),
		Y:    nonNilFloats(t.Values),
	}
	if opts.Colors != "" {
		trace.Marker = &Marker{Color: opts.Colors}
	}
	layout := opts.layout()
	if yaxis.Title != nil || len(yaxis.Range) > 0 {
		ya := yaxis
		layout.YAxis = &ya
	}
	if layout.XAxis == nil && t.Columns[0] != "" {
		layout.XAxis = &Axis{Title: &Title{Text: t.Columns[0]}, Type: "category"}
	}
	layout.ShowLegend = boolPtr(legend != "")
	return Figure{Data: []Trace{trace}, Layout: layout}
}

// Group is one box of a box plot.
type Group struct {
	Name   string
	Values []float64
}

// BoxPlotGraphic draws one box per group, in the given order.
func BoxPlotGraphic(groups []Group, opts Options) Figure {
	data := make([]Trace, 0, len(groups))
	for _, g := range groups {
		data = append(data, Trace{
			Type:      "box",
			Name:      g.Name,
			Y:         nonNilFloats(g.Values),
			BoxPoints: "outliers",
		})
	}
	layout := opts.layout()
	layout.ShowLegend = boolPtr(false)
	return Figure{Data: data, Layout: layout}
}

// LineGraphic draws y against x as a single line with markers.
func LineGraphic(x []int, y []float64, opts Options) Figure {
	if x == nil {
		x = []int{}
	}
	trace := Trace{
		Type: "scatter",
		Mode: "lines+markers",
		X:    x,
		Y:    nonNilFloats(y),
	}
	if opts.Colors != "" {
		trace.Line = &Line{Color: opts.Colors}
	}
	return Figure{Data: []Trace{trace}, Layout: opts.layout()}
}

// Area is one stacked series of a StackedArea chart.
type Area struct {
	Name   string
	Values []float64
}

// StackedArea stacks areas on the primary axis (0..100) and draws totals as
// a line on a secondary axis.
func StackedArea(x []string, areas []Area, totalsName string, totals []int, opts Options) Figure {
	data := make([]Trace, 0, len(areas)+1)
	data = append(data, Trace{
		Type:  "scatter",
		Mode:  "lines",
		Name:  totalsName,
		X:     nonNilStrings(x),
		Y:     nonNilInts(totals),
		Line:  &Line{Color: "#0066cc", Width: 2},
		YAxis: "y2",
	})
	for _, a := range areas {
		data = append(data, Trace{
			Type:       "scatter",
			Mode:       "lines",
			Name:       a.Name,
			X:          nonNilStrings(x),
			Y:          nonNilFloats(a.Values),
			StackGroup: "variants",
			Opacity:    0.7,
			HoverInfo:  "name+y",
		})
	}

	layout := opts.layout()
	yTitle := "Lineage % relative"
	if opts.YTitle != "" {
		yTitle = opts.YTitle
	}
	layout.YAxis = &Axis{Title: &Title{Text: yTitle}, Range: []float64{0, 100}}
	layout.YAxis2 = &Axis{Title: &Title{Text: totalsName}, Overlaying: "y", Side: "right"}
	layout.HoverMode = "x unified"
	layout.Legend = &Legend{Orientation: "h", X: 0.5, XAnchor: "center"}
	layout.Margin = &Margin{L: 10, R: 10, B: 40, T: 30}
	return Figure{Data: data, Layout: layout}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilFloats(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
