package dashboard

import (
	"context"
	"fmt"

	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/plotly"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/steps"
)

type LineageVariationOutput struct {
	Window Window        `json:"window"`
	Matrix LineageMatrix `json:"matrix"`
	Figure plotly.Figure `json:"figure"`
}

// LineageVariation charts weekly lineage shares over the last periodDays days,
// or over the configured default year when periodDays is zero.
func (u Usecases) LineageVariation(ctx context.Context, periodDays int) (LineageVariationOutput, error) {
	if periodDays < 0 || !ValidPeriod(periodDays) {
		return LineageVariationOutput{}, fmt.Errorf("%w: %d", ErrInvalidPeriod, periodDays)
	}
	raw, err := u.GetOrCompute(ctx, GraphicVariantData)
	if err != nil {
		return LineageVariationOutput{}, err
	}
	rows, err := steps.DecodeVariantRows(raw)
	if err != nil {
		return LineageVariationOutput{}, err
	}

	window := steps.YearWindow(u.deps.Config.DefaultYear)
	if periodDays > 0 {
		window = steps.PeriodWindow(periodDays, u.deps.Now())
	}
	matrix, err := steps.LineageVariation(rows, window)
	if err != nil {
		return LineageVariationOutput{}, err
	}

	areas := make([]plotly.Area, 0, len(matrix.Lineages))
	for _, l := range matrix.Lineages {
		areas = append(areas, plotly.Area{Name: l, Values: matrix.Percent[l]})
	}
	fig := plotly.StackedArea(matrix.Weeks, areas, "Number of samples processed", matrix.Totals, plotly.Options{
		Title:  "Variants over the selected period",
		Height: 600,
		XTitle: "Collection Date",
	})
	return LineageVariationOutput{Window: window, Matrix: matrix, Figure: fig}, nil
}
