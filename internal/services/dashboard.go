package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard"
	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard/plotly"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type DashboardService interface {
	SequencingGraphics(ctx context.Context) (map[string]plotly.Figure, error)
	LineageVariation(ctx context.Context, periodDays int) (dashboard.LineageVariationOutput, error)
	Graphic(ctx context.Context, name, format string) (any, error)
	// ListGraphics reports every defined graphic and whether it is cached.
	ListGraphics(ctx context.Context) ([]dashboard.GraphicStatus, error)
	Invalidate(ctx context.Context, name string) error
	// Refresh recomputes the named graphics, or every graphic when names is
	// empty. It stops at the first failure.
	Refresh(ctx context.Context, names ...string) ([]string, error)
}

type dashboardService struct {
	log *logger.Logger
	uc  dashboard.Usecases
}

func NewDashboardService(log *logger.Logger, uc dashboard.Usecases) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{log: serviceLog, uc: uc.WithLog(serviceLog)}
}

func (s *dashboardService) SequencingGraphics(ctx context.Context) (map[string]plotly.Figure, error) {
	figs, err := s.uc.SequencingGraphics(ctx)
	if err != nil {
		s.log.Warn("Sequencing dashboard failed", "error", err)
		return nil, err
	}
	return figs, nil
}

func (s *dashboardService) LineageVariation(ctx context.Context, periodDays int) (dashboard.LineageVariationOutput, error) {
	return s.uc.LineageVariation(ctx, periodDays)
}

func (s *dashboardService) Graphic(ctx context.Context, name, format string) (any, error) {
	g, err := dashboard.ParseGraphicName(name)
	if err != nil {
		return nil, err
	}
	shape, err := dashboard.ParseOutputShape(format)
	if err != nil {
		return nil, err
	}
	return s.uc.Graphic(ctx, g, shape)
}

func (s *dashboardService) ListGraphics(ctx context.Context) ([]dashboard.GraphicStatus, error) {
	return s.uc.Catalog(ctx)
}

func (s *dashboardService) Invalidate(ctx context.Context, name string) error {
	g, err := dashboard.ParseGraphicName(name)
	if err != nil {
		return err
	}
	if err := s.uc.Invalidate(ctx, g); err != nil {
		return err
	}
	s.log.Info("Graphic invalidated", "graphic", g.String())
	return nil
}

func (s *dashboardService) Refresh(ctx context.Context, names ...string) ([]string, error) {
	graphics := dashboard.AllGraphics()
	if len(names) > 0 {
		graphics = graphics[:0:0]
		for _, n := range names {
			g, err := dashboard.ParseGraphicName(n)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n, err)
			}
			graphics = append(graphics, g)
		}
	}
	done := make([]string, 0, len(graphics))
	for _, g := range graphics {
		if _, err := s.uc.Refresh(ctx, g); err != nil {
			if errors.Is(err, context.Canceled) {
				return done, err
			}
			return done, fmt.Errorf("refresh %s: %w", g, err)
		}
		done = append(done, g.String())
	}
	s.log.Info("Graphics refreshed", "graphics", done)
	return done, nil
}
