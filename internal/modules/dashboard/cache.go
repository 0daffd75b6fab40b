package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/seqmeta-backend/internal/observability"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// AggregateStore holds named aggregate JSON documents.
type AggregateStore interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Set(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// Tier is one level of an AggregateCache. Errors from a BestEffort tier are
// logged and treated as a miss instead of failing the lookup.
type Tier struct {
	Name       string
	Store      AggregateStore
	BestEffort bool
}

// AggregateCache reads tiers top to bottom and backfills the tiers above a
// hit. Concurrent misses on the same name share one computation.
type AggregateCache struct {
	log            *logger.Logger
	metrics        *observability.Metrics
	tiers          []Tier
	group          singleflight.Group
	computeTimeout time.Duration
}

// defaultComputeTimeout bounds one shared computation, which no single
// caller can cancel.
const defaultComputeTimeout = 2 * time.Minute

func NewAggregateCache(log *logger.Logger, metrics *observability.Metrics, tiers ...Tier) *AggregateCache {
	kept := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.Store != nil {
			kept = append(kept, t)
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AggregateCache{
		log:            log.With("component", "AggregateCache"),
		metrics:        metrics,
		tiers:          kept,
		computeTimeout: defaultComputeTimeout,
	}
}

func (c *AggregateCache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	return c.get(ctx, name, true)
}

func (c *AggregateCache) get(ctx context.Context, name string, record bool) ([]byte, bool, error) {
	for i, t := range c.tiers {
		data, ok, err := t.Store.Get(ctx, name)
		if err != nil {
			if t.BestEffort {
				c.log.Warn("aggregate cache tier read failed", "tier", t.Name, "graphic", name, "error", err)
				continue
			}
			return nil, false, fmt.Errorf("%s cache get %q: %w", t.Name, name, err)
		}
		if record {
			c.metrics.IncCacheLookup(name, t.Name, ok)
		}
		if !ok {
			continue
		}
		c.backfill(ctx, name, data, c.tiers[:i])
		return data, true, nil
	}
	return nil, false, nil
}

// Set writes bottom tier first so a durable copy exists before faster tiers
// see it.
func (c *AggregateCache) Set(ctx context.Context, name string, data []byte) error {
	for i := len(c.tiers) - 1; i >= 0; i-- {
		t := c.tiers[i]
		if err := t.Store.Set(ctx, name, data); err != nil {
			if t.BestEffort {
				c.log.Warn("aggregate cache tier write failed", "tier", t.Name, "graphic", name, "error", err)
				continue
			}
			return fmt.Errorf("%s cache set %q: %w", t.Name, name, err)
		}
	}
	return nil
}

// Invalidate removes name from every tier, top tier first.
func (c *AggregateCache) Invalidate(ctx context.Context, name string) error {
	for _, t := range c.tiers {
		if err := t.Store.Delete(ctx, name); err != nil {
			if t.BestEffort {
				c.log.Warn("aggregate cache tier delete failed", "tier", t.Name, "graphic", name, "error", err)
				continue
			}
			return fmt.Errorf("%s cache delete %q: %w", t.Name, name, err)
		}
	}
	return nil
}

// GetOrCompute returns the cached aggregate, or runs compute, stores its
// result and returns it. computed reports whether this call's flight ran
// compute. A failed store is logged; the computed value is still returned.
//
// The shared flight runs detached from any one caller's cancellation, bounded
// by computeTimeout. Each caller stops waiting when its own ctx is done.
func (c *AggregateCache) GetOrCompute(ctx context.Context, name string, compute func(ctx context.Context) ([]byte, error)) (data []byte, computed bool, err error) {
	if data, ok, err := c.Get(ctx, name); err != nil || ok {
		return data, false, err
	}

	type result struct {
		data     []byte
		computed bool
	}
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(flightCtx, c.computeTimeout)
		defer cancel()
		// Another flight may have stored the value between our miss and now.
		if data, ok, err := c.get(fctx, name, false); err != nil || ok {
			return result{data: data}, err
		}
		start := time.Now()
		data, err := compute(fctx)
		c.metrics.ObserveCompute(name, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		if err := c.Set(fctx, name, data); err != nil {
			c.log.Error("failed to store computed aggregate", "graphic", name, "error", err)
		}
		c.log.Info("aggregate computed", "graphic", name, "bytes", len(data), "duration_ms", time.Since(start).Milliseconds())
		return result{data: data, computed: true}, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		r := res.Val.(result)
		return r.data, r.computed, nil
	}
}

func (c *AggregateCache) backfill(ctx context.Context, name string, data []byte, upper []Tier) {
	for _, t := range upper {
		if err := t.Store.Set(ctx, name, data); err != nil {
			c.log.Warn("aggregate cache backfill failed", "tier", t.Name, "graphic", name, "error", err)
		}
	}
}
