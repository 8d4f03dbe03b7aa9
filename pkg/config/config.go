package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Storage       StorageConfig
	Upload        UploadConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NAMEPLATE_APP_ENV" required:"true"`
	Port         string `envconfig:"NAMEPLATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NAMEPLATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NAMEPLATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NAMEPLATE_DB_DSN"`
	Driver string `envconfig:"NAMEPLATE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NAMEPLATE_DB_HOST"`
	LegacyPort     int    `envconfig:"NAMEPLATE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NAMEPLATE_DB_USER"`
	LegacyPassword string `envconfig:"NAMEPLATE_DB_PASSWORD"`
	LegacyName     string `envconfig:"NAMEPLATE_DB_NAME"`
	LegacySSLMode  string `envconfig:"NAMEPLATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NAMEPLATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NAMEPLATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NAMEPLATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NAMEPLATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NAMEPLATE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NAMEPLATE_REDIS_ADDR"`
	Password     string        `envconfig:"NAMEPLATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"NAMEPLATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NAMEPLATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NAMEPLATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NAMEPLATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NAMEPLATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NAMEPLATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NAMEPLATE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NAMEPLATE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"NAMEPLATE_JWT_EXPIRATION_MINUTES" default:"1440"`
	CookieName        string `envconfig:"NAMEPLATE_SESSION_COOKIE" default:"token"`
}

// Expiration returns the access token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NAMEPLATE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NAMEPLATE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NAMEPLATE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NAMEPLATE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NAMEPLATE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"NAMEPLATE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"NAMEPLATE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"NAMEPLATE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"NAMEPLATE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"NAMEPLATE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"NAMEPLATE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NAMEPLATE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NAMEPLATE_AUTO_MIGRATE" default:"false"`
}

// StorageConfig points at the S3-compatible object store holding rendered
// nameplate images. Empty values leave uploads disabled instead of failing
// the boot sequence.
type StorageConfig struct {
	Endpoint  string `envconfig:"NAMEPLATE_STORAGE_ENDPOINT"`
	Region    string `envconfig:"NAMEPLATE_STORAGE_REGION" default:"us-east-1"`
	Bucket    string `envconfig:"NAMEPLATE_STORAGE_BUCKET" default:"nameplates"`
	AccessKey string `envconfig:"NAMEPLATE_STORAGE_ACCESS_KEY"`
	SecretKey string `envconfig:"NAMEPLATE_STORAGE_SECRET_KEY"`
	PublicURL string `envconfig:"NAMEPLATE_STORAGE_PUBLIC_URL"`
}

// Configured reports whether enough settings exist to reach the object store.
func (s StorageConfig) Configured() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"NAMEPLATE_MAX_UPLOAD_MB" default:"20"`
}

// MaxBytes converts the configured megabyte limit to bytes.
func (u UploadConfig) MaxBytes() int64 {
	if u.MaxUploadMB <= 0 {
		return 0
	}
	return int64(u.MaxUploadMB) << 20
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
