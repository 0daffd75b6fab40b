package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/modules/dashboard"
	"github.com/yungbote/seqmeta-backend/internal/observability"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Schema    services.SchemaService
	Sample    services.SampleService
	Ingestion services.IngestionService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	schemas := services.NewSchemaService(db, log, reposet.Schema, cfg.DefaultSchemaName)

	tiers := make([]dashboard.Tier, 0, 2)
	if clients.GraphicCache != nil {
		tiers = append(tiers, dashboard.Tier{Name: "redis", Store: clients.GraphicCache, BestEffort: true})
	}
	durable := dashboard.NewDBStore(reposet.GraphicJSON)
	tiers = append(tiers, dashboard.Tier{Name: "db", Store: durable})

	deps := dashboard.UsecasesDeps{
		Log:           log,
		Metrics:       metrics,
		Cache:         dashboard.NewAggregateCache(log, metrics, tiers...),
		Samples:       reposet.Sample,
		BioinfoValues: reposet.BioinfoValue,
		LineageValues: reposet.LineageValue,
		Stored:        durable,
		Config: dashboard.Config{
			Project:         cfg.LIMSProject,
			DefaultYear:     cfg.DashboardDefaultYear,
			BasePairsBucket: cfg.BasePairsBucket,
		},
	}
	if clients.LIMS != nil {
		deps.Stats = clients.LIMS
	}

	return Services{
		Auth:   services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Schema: schemas,
		Sample: services.NewSampleService(db, log, reposet.Sample, reposet.BioinfoValue),
		Ingestion: services.NewIngestionService(
			db,
			log,
			metrics,
			schemas,
			reposet.Sample,
			reposet.SchemaField,
			reposet.BioinfoValue,
			reposet.LineageValue,
		),
		Dashboard: services.NewDashboardService(log, dashboard.New(deps)),
	}
}

// LoadSchemaFile registers the schema definition at path. A definition that
// is already stored is not an error.
func LoadSchemaFile(ctx context.Context, log *logger.Logger, schemas services.SchemaService, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}
	def, err := services.ParseSchemaDefinition(raw)
	if err != nil {
		return err
	}
	s, err := schemas.Create(ctx, def)
	if errors.Is(err, services.ErrSchemaExists) {
		log.Info("Schema already loaded", "name", def.Name, "version", def.Version)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("Schema loaded", "name", s.Name, "version", s.Version, "bioinfo_fields", len(s.BioinfoFields), "lineage_fields", len(s.LineageFields))
	return nil
}
