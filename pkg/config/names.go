package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for unannotated additions.
const EnvPrefix = "RABUSTE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "RABUSTE_APP_ENV"
	EnvPort       = "RABUSTE_APP_PORT"
	EnvDBDSN      = "RABUSTE_DB_DSN"
	EnvDBHost     = "RABUSTE_DB_HOST"
	EnvDBUser     = "RABUSTE_DB_USER"
	EnvDBName     = "RABUSTE_DB_NAME"
	EnvRedisURL   = "RABUSTE_REDIS_URL"
	EnvJWTSecret  = "RABUSTE_JWT_SECRET"
	EnvJWTIssuer  = "RABUSTE_JWT_ISSUER"
	EnvJWTExpMins = "RABUSTE_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "RABUSTE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
