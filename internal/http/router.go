package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/seqmeta-backend/internal/http/handlers"
	httpMW "github.com/yungbote/seqmeta-backend/internal/http/middleware"
	"github.com/yungbote/seqmeta-backend/internal/observability"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	SampleHandler    *httpH.SampleHandler
	BioinfoHandler   *httpH.BioinfoHandler
	SchemaHandler    *httpH.SchemaHandler
	DashboardHandler *httpH.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Ingestion
		if cfg.SampleHandler != nil {
			protected.POST("/samples", cfg.SampleHandler.Create)
			protected.GET("/samples/:id/analysis-dates", cfg.SampleHandler.AnalysisDates)
			if cfg.AuthMiddleware != nil {
				protected.DELETE("/samples/:id", cfg.AuthMiddleware.RequireAdmin(), cfg.SampleHandler.Delete)
			}
		}
		if cfg.BioinfoHandler != nil {
			protected.POST("/bioinfo", cfg.BioinfoHandler.Ingest)
		}

		// Schemas
		if cfg.SchemaHandler != nil {
			protected.POST("/schemas", cfg.SchemaHandler.Create)
			protected.GET("/schemas", cfg.SchemaHandler.List)
			protected.GET("/schemas/:name/:version", cfg.SchemaHandler.Get)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard/sequencing", cfg.DashboardHandler.Sequencing)
			protected.GET("/dashboard/lineages", cfg.DashboardHandler.Lineages)
			protected.GET("/graphics", cfg.DashboardHandler.List)
			protected.GET("/graphics/:name", cfg.DashboardHandler.Graphic)
			protected.DELETE("/graphics/:name", cfg.DashboardHandler.Invalidate)
			protected.POST("/graphics/:name/refresh", cfg.DashboardHandler.Refresh)
		}
	}

	return r
}
