package config

// EnvPrefix is the shared prefix for every environment variable the
// service reads. Individual fields carry fully qualified envconfig tags,
// the prefix exists for tooling that enumerates our variables.
const EnvPrefix = "STYLEHAVEN"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "STYLEHAVEN_APP_ENV"
	EnvPort                   = "STYLEHAVEN_APP_PORT"
	EnvDBDSN                  = "STYLEHAVEN_DB_DSN"
	EnvDBHost                 = "STYLEHAVEN_DB_HOST"
	EnvDBUser                 = "STYLEHAVEN_DB_USER"
	EnvDBName                 = "STYLEHAVEN_DB_NAME"
	EnvRedisURL               = "STYLEHAVEN_REDIS_URL"
	EnvJWTSecret              = "STYLEHAVEN_JWT_SECRET"
	EnvJWTIssuer              = "STYLEHAVEN_JWT_ISSUER"
	EnvJWTExpMins             = "STYLEHAVEN_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "STYLEHAVEN_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "STYLEHAVEN_GCP_PROJECT_ID"
	EnvPubSubNotificationSub  = "STYLEHAVEN_PUBSUB_NOTIFICATION_SUBSCRIPTION"
)

// legacyDBEnvVars are the discrete connection variables accepted when
// STYLEHAVEN_DB_DSN is not set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
