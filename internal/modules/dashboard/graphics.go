package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGraphicNotDefined = errors.New("pre-processing not defined")
	ErrShapeMismatch     = errors.New("output format not supported for graphic")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrStatsUnavailable  = errors.New("lims statistics not configured")
)

// GraphicName identifies a cached aggregate and its pre-processing routine.
type GraphicName int

const (
	GraphicUnknown GraphicName = iota
	GraphicLibraryKitPCR1
	GraphicCtNumberOfBasePairsSequenced
	GraphicVariantData
)

var graphicNames = map[GraphicName]string{
	GraphicLibraryKitPCR1:               "library_kit_pcr_1",
	GraphicCtNumberOfBasePairsSequenced: "ct_number_of_base_pairs_sequenced",
	GraphicVariantData:                  "variant_graphic_data",
}

func (g GraphicName) String() string {
	if s, ok := graphicNames[g]; ok {
		return s
	}
	return "unknown"
}

// AllGraphics lists every defined graphic in a stable order.
func AllGraphics() []GraphicName {
	return []GraphicName{GraphicLibraryKitPCR1, GraphicCtNumberOfBasePairsSequenced, GraphicVariantData}
}

func ParseGraphicName(s string) (GraphicName, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for g, name := range graphicNames {
		if name == key {
			return g, nil
		}
	}
	return GraphicUnknown, fmt.Errorf("%w: %q", ErrGraphicNotDefined, s)
}

// OutputShape selects how a cached aggregate is reshaped for a chart.
type OutputShape string

const (
	ShapeRaw        OutputShape = ""
	ShapeListOfDict OutputShape = "list_of_dict"
	ShapeDict       OutputShape = "dict"
)

func ParseOutputShape(s string) (OutputShape, error) {
	switch OutputShape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeRaw, "raw":
		return ShapeRaw, nil
	case ShapeListOfDict:
		return ShapeListOfDict, nil
	case ShapeDict:
		return ShapeDict, nil
	}
	return ShapeRaw, fmt.Errorf("%w: unknown format %q", ErrShapeMismatch, s)
}

// supportsShape reports whether the graphic's aggregate has the layout the
// shape expects: histograms for list_of_dict, buckets for dict.
func (g GraphicName) supportsShape(shape OutputShape) bool {
	switch shape {
	case ShapeRaw:
		return true
	case ShapeListOfDict:
		return g == GraphicLibraryKitPCR1
	case ShapeDict:
		return g == GraphicCtNumberOfBasePairsSequenced
	}
	return false
}

// Lineage period presets, in days. Zero selects the default calendar year.
var LineagePeriods = []int{730, 180, 30}

func ValidPeriod(days int) bool {
	if days == 0 {
		return true
	}
	for _, p := range LineagePeriods {
		if p == days {
			return true
		}
	}
	return false
}
