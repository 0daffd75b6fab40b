package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/seqmeta-backend/internal/http"
	httpH "github.com/yungbote/seqmeta-backend/internal/http/handlers"
	httpMW "github.com/yungbote/seqmeta-backend/internal/http/middleware"
	"github.com/yungbote/seqmeta-backend/internal/observability"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Sample    *httpH.SampleHandler
	Bioinfo   *httpH.BioinfoHandler
	Schema    *httpH.SchemaHandler
	Dashboard *httpH.DashboardHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Auth:      httpH.NewAuthHandler(services.Auth),
		Sample:    httpH.NewSampleHandler(log, services.Sample),
		Bioinfo:   httpH.NewBioinfoHandler(log, services.Ingestion),
		Schema:    httpH.NewSchemaHandler(services.Schema),
		Dashboard: httpH.NewDashboardHandler(log, services.Dashboard),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		SampleHandler:    handlers.Sample,
		BioinfoHandler:   handlers.Bioinfo,
		SchemaHandler:    handlers.Schema,
		DashboardHandler: handlers.Dashboard,
	})
}
