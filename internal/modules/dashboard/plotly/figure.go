// Package plotly builds Plotly-compatible figure documents. Rendering is left
// to the frontend; these types only carry traces and layout.
package plotly

// Figure marshals to {"data": [...], "layout": {...}}.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type        string    `json:"type"`
	Name        string    `json:"name,omitempty"`
	X           any       `json:"x,omitempty"`
	Y           any       `json:"y,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Marker      *Marker   `json:"marker,omitempty"`
	Line        *Line     `json:"line,omitempty"`
	StackGroup  string    `json:"stackgroup,omitempty"`
	Opacity     float64   `json:"opacity,omitempty"`
	HoverInfo   string    `json:"hoverinfo,omitempty"`
	YAxis       string    `json:"yaxis,omitempty"`
	BoxPoints   string    `json:"boxpoints,omitempty"`
	ShowLegend  *bool     `json:"showlegend,omitempty"`
	Text        []string  `json:"text,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Width       []float64 `json:"width,omitempty"`
}

type Marker struct {
	Color string `json:"color,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Layout struct {
	Title      *Title  `json:"title,omitempty"`
	Height     int     `json:"height,omitempty"`
	Width      int     `json:"width,omitempty"`
	XAxis      *Axis   `json:"xaxis,omitempty"`
	YAxis      *Axis   `json:"yaxis,omitempty"`
	YAxis2     *Axis   `json:"yaxis2,omitempty"`
	Legend     *Legend `json:"legend,omitempty"`
	Margin     *Margin `json:"margin,omitempty"`
	BarMode    string  `json:"barmode,omitempty"`
	HoverMode  string  `json:"hovermode,omitempty"`
	ShowLegend *bool   `json:"showlegend,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title      *Title    `json:"title,omitempty"`
	Range      []float64 `json:"range,omitempty"`
	Overlaying string    `json:"overlaying,omitempty"`
	Side       string    `json:"side,omitempty"`
	Type       string    `json:"type,omitempty"`
}

type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x"`
	XAnchor     string  `json:"xanchor,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
	T int `json:"t"`
}

// Options are the display settings shared by every chart builder.
type Options struct {
	Title  string
	Height int
	Width  int
	Colors string
	XTitle string
	YTitle string
}

func (o Options) layout() Layout {
	l := Layout{Height: o.Height, Width: o.Width}
	if o.Title != "" {
		l.Title = &Title{Text: o.Title}
	}
	if o.XTitle != "" {
		l.XAxis = &Axis{Title: &Title{Text: o.XTitle}}
	}
	if o.YTitle != "" {
		l.YAxis = &Axis{Title: &Title{Text: o.YTitle}}
	}
	return l
}

func boolPtr(v bool) *bool { return &v }
