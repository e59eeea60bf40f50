package config

// EnvPrefix is empty because every variable carries the full
// TASKPLANNER_ prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "TASKPLANNER_APP_ENV"
	EnvPort         = "TASKPLANNER_APP_PORT"
	EnvLogLevel     = "TASKPLANNER_LOG_LEVEL"
	EnvLogWarnStack = "TASKPLANNER_LOG_WARN_STACK"

	EnvDBDSN    = "TASKPLANNER_DB_DSN"
	EnvDBDriver = "TASKPLANNER_DB_DRIVER"
	EnvDBHost   = "TASKPLANNER_DB_HOST"
	EnvDBPort   = "TASKPLANNER_DB_PORT"
	EnvDBUser   = "TASKPLANNER_DB_USER"
	EnvDBPass   = "TASKPLANNER_DB_PASSWORD"
	EnvDBName   = "TASKPLANNER_DB_NAME"

	EnvRedisURL = "TASKPLANNER_REDIS_URL"

	EnvJWTSecret  = "TASKPLANNER_JWT_SECRET"
	EnvJWTIssuer  = "TASKPLANNER_JWT_ISSUER"
	EnvJWTExpMins = "TASKPLANNER_JWT_EXPIRATION_MINUTES"
)

// legacyDBEnvVars are the discrete connection variables accepted when
// TASKPLANNER_DB_DSN is not set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
