package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/steps"
	"github.com/yungbote/seqmeta-backend/internal/observability"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// StoredLister reports the graphic names the durable cache tier holds.
type StoredLister interface {
	StoredNames(ctx context.Context) ([]string, error)
}

// StatsFetcher returns category counts for one project field from the LIMS.
type StatsFetcher interface {
	FetchStats(ctx context.Context, project, field string) (map[string]int, error)
}

type Config struct {
	// Project scopes LIMS statistics queries.
	Project string
	// DefaultYear selects the lineage window when no period is given.
	DefaultYear     int
	BasePairsBucket int64
}

type UsecasesDeps struct {
	Log     *logger.Logger
	Metrics *observability.Metrics
	Cache   *AggregateCache

	Samples       steps.LibraryKitCtSource
	BioinfoValues steps.FieldCtSource
	LineageValues steps.LineageDateSource
	Stats         StatsFetcher
	// Stored lists the aggregates held by the durable tier. Optional.
	Stored StoredLister

	Config Config
	Now    func() time.Time
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Config.Project == "" {
		deps.Config.Project = "Relecov"
	}
	if deps.Config.DefaultYear == 0 {
		deps.Config.DefaultYear = 2021
	}
	if deps.Config.BasePairsBucket <= 0 {
		deps.Config.BasePairsBucket = steps.DefaultBasePairsBucket
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

type (
	CategoryValues = steps.CategoryValues
	BucketMeans    = steps.BucketMeans
	LineageMatrix  = steps.LineageMatrix
	Window         = steps.Window
)

// GetOrCompute returns the raw aggregate for g, computing and caching it on a
// miss.
func (u Usecases) GetOrCompute(ctx context.Context, g GraphicName) ([]byte, error) {
	if _, ok := graphicNames[g]; !ok {
		return nil, ErrGraphicNotDefined
	}
	data, computed, err := u.deps.Cache.GetOrCompute(ctx, g.String(), func(ctx context.Context) ([]byte, error) {
		return u.compute(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	if computed {
		u.deps.Log.Debug("graphic cache miss", "graphic", g.String())
	}
	return data, nil
}

// Graphic returns g's aggregate reshaped for shape: []CategoryValues for
// list_of_dict, BucketMeans for dict, json.RawMessage otherwise.
func (u Usecases) Graphic(ctx context.Context, g GraphicName, shape OutputShape) (any, error) {
	if !g.supportsShape(shape) {
		return nil, fmt.Errorf("%w: %s as %q", ErrShapeMismatch, g, shape)
	}
	raw, err := u.GetOrCompute(ctx, g)
	if err != nil {
		return nil, err
	}
	switch shape {
	case ShapeListOfDict:
		return steps.ExpandHistograms(raw)
	case ShapeDict:
		return steps.MeanByBucket(raw)
	default:
		return json.RawMessage(raw), nil
	}
}

func (u Usecases) Invalidate(ctx context.Context, g GraphicName) error {
	if _, ok := graphicNames[g]; !ok {
		return ErrGraphicNotDefined
	}
	return u.deps.Cache.Invalidate(ctx, g.String())
}

// GraphicStatus describes one defined graphic for listings.
type GraphicStatus struct {
	Name    string   `json:"name"`
	Formats []string `json:"formats"`
	Cached  bool     `json:"cached"`
}

// Catalog lists every defined graphic with its output formats and whether a
// computed aggregate is currently stored.
func (u Usecases) Catalog(ctx context.Context) ([]GraphicStatus, error) {
	stored := map[string]bool{}
	if u.deps.Stored != nil {
		names, err := u.deps.Stored.StoredNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stored graphics: %w", err)
		}
		for _, n := range names {
			stored[n] = true
		}
	}
	out := make([]GraphicStatus, 0, len(graphicNames))
	for _, g := range AllGraphics() {
		st := GraphicStatus{Name: g.String(), Formats: []string{"raw"}, Cached: stored[g.String()]}
		for _, shape := range []OutputShape{ShapeListOfDict, ShapeDict} {
			if g.supportsShape(shape) {
				st.Formats = append(st.Formats, string(shape))
			}
		}
		out = append(out, st)
	}
	return out, nil
}

// Refresh recomputes g from current rows and replaces the cached copy.
func (u Usecases) Refresh(ctx context.Context, g GraphicName) ([]byte, error) {
	if err := u.Invalidate(ctx, g); err != nil {
		return nil, err
	}
	return u.GetOrCompute(ctx, g)
}

func (u Usecases) compute(ctx context.Context, g GraphicName) (out []byte, err error) {
	ctx, span := observability.Tracer().Start(ctx, "dashboard.compute")
	span.SetAttributes(attribute.String("graphic", g.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	switch g {
	case GraphicLibraryKitPCR1:
		return steps.LibraryKitPCR1(ctx, u.deps.Samples)
	case GraphicCtNumberOfBasePairsSequenced:
		return steps.CtByBasePairs(ctx, u.deps.BioinfoValues, u.deps.Config.BasePairsBucket)
	case GraphicVariantData:
		return steps.VariantGraphicData(ctx, u.deps.LineageValues)
	case GraphicUnknown:
	}
	return nil, ErrGraphicNotDefined
}
