package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "NAMEPLATE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "NAMEPLATE_APP_ENV"
	EnvPort   = "NAMEPLATE_APP_PORT"
	EnvDBDSN  = "NAMEPLATE_DB_DSN"
	EnvDBHost = "NAMEPLATE_DB_HOST"
	EnvDBUser = "NAMEPLATE_DB_USER"
	EnvDBName = "NAMEPLATE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
