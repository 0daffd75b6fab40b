package app

import (
	"fmt"

	"github.com/yungbote/seqmeta-backend/internal/clients/lims"
	"github.com/yungbote/seqmeta-backend/internal/clients/redis"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// Clients holds the optional external collaborators. A nil field means the
// integration is not configured.
type Clients struct {
	GraphicCache *redis.AggregateCache
	LIMS         lims.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis
	if cfg.Redis.Addr != "" {
		c, err := redis.NewAggregateCache(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis graphic cache: %w", err)
		}
		out.GraphicCache = c
	} else {
		log.Warn("REDIS_ADDR not set; graphics are cached in the database only")
	}

	// LIMS
	if cfg.LIMS.BaseURL != "" {
		c, err := lims.NewClient(log, cfg.LIMS)
		if err != nil {
			return Clients{}, fmt.Errorf("init lims client: %w", err)
		}
		out.LIMS = c
	} else {
		log.Warn("LIMS_URL not set; sequencing dashboard is unavailable")
	}
	return out, nil
}

func (c Clients) Close() {
	if c.GraphicCache != nil {
		_ = c.GraphicCache.Close()
	}
}
