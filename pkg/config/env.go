package config

const EnvPrefix = "BCF"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv            = "BCF_APP_ENV"
	EnvPort              = "BCF_APP_PORT"
	EnvDBDSN             = "BCF_DB_DSN"
	EnvSQLitePath        = "BCF_SQLITE_PATH"
	EnvRedisURL          = "BCF_REDIS_URL"
	EnvJWTSecret         = "BCF_JWT_SECRET"
	EnvJWTIssuer         = "BCF_JWT_ISSUER"
	EnvUseSQLite         = "BCF_USE_SQLITE"
	EnvPersistOrders     = "BCF_ORDERS_PERSIST"
	EnvGCPProjectID      = "BCF_GCP_PROJECT_ID"
	EnvPubSubOrdersTopic = "BCF_PUBSUB_ORDERS_TOPIC"
	EnvOrderIDDigits     = "BCF_ORDER_ID_DIGITS"
	EnvSessionIdleTTL    = "BCF_WORKFLOW_SESSION_IDLE_TTL"
	EnvDemoOwner         = "BCF_DEMO_OWNER"
)
