package app

import (
	"strings"
	"time"

	"github.com/yungbote/seqmeta-backend/internal/clients/lims"
	"github.com/yungbote/seqmeta-backend/internal/clients/redis"
	"github.com/yungbote/seqmeta-backend/internal/platform/envutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	Environment string
	Version     string
	ServiceName string

	// DBDriver is "postgres" or "sqlite".
	DBDriver   string
	SQLitePath string

	JWTSecretKey   string
	AccessTokenTTL time.Duration
	CORSOrigins    []string

	Redis redis.Config
	LIMS  lims.Config

	LIMSProject          string
	DashboardDefaultYear int
	BasePairsBucket      int64

	DefaultSchemaName string
	// SchemaFile is loaded at startup when set; an existing name/version is
	// left untouched.
	SchemaFile string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.String("PORT", "8080", log),
		Environment: envutil.String("ENVIRONMENT", "development", log),
		Version:     envutil.String("SERVICE_VERSION", "dev", log),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "seqmeta", log),

		DBDriver:   strings.ToLower(envutil.String("DB_DRIVER", "postgres", log)),
		SQLitePath: envutil.String("SQLITE_PATH", "seqmeta.db", log),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: envutil.Duration("ACCESS_TOKEN_TTL", time.Hour, log),
		CORSOrigins:    splitList(envutil.String("CORS_ORIGINS", "", log)),

		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
			Prefix:   envutil.String("REDIS_GRAPHIC_PREFIX", "seqmeta:graphic:", log),
			TTL:      envutil.Duration("GRAPHIC_CACHE_TTL", 0, log),
		},
		LIMS: lims.ConfigFromEnv(log),

		LIMSProject:          envutil.String("LIMS_PROJECT", "Relecov", log),
		DashboardDefaultYear: envutil.Int("DASHBOARD_DEFAULT_YEAR", 2021, log),
		BasePairsBucket:      int64(envutil.Int("BASE_PAIRS_BUCKET", 100000, log)),

		DefaultSchemaName: envutil.String("DEFAULT_SCHEMA_NAME", "", log),
		SchemaFile:        envutil.String("SCHEMA_FILE", "", log),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
