package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/kitcart/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "KITCART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "KITCART_APP_ENV"
	EnvPort           = "KITCART_APP_PORT"
	EnvStorageDriver  = "KITCART_STORAGE_DRIVER"
	EnvDBDSN          = "KITCART_DB_DSN"
	EnvDBHost         = "KITCART_DB_HOST"
	EnvDBUser         = "KITCART_DB_USER"
	EnvDBName         = "KITCART_DB_NAME"
	EnvRedisURL       = "KITCART_REDIS_URL"
	EnvRedisAddr      = "KITCART_REDIS_ADDR"
	EnvCatalogPath    = "KITCART_CATALOG_PATH"
	EnvStorageKeyTTL  = "KITCART_STORAGE_KEY_TTL"
	EnvSQLitePath     = "KITCART_SQLITE_PATH"
	EnvAutoMigrate    = "KITCART_AUTO_MIGRATE"
	EnvSessionSecure  = "KITCART_SESSION_COOKIE_SECURE"
	EnvShutdownPeriod = "KITCART_SHUTDOWN_TIMEOUT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Session SessionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	driver, err := enums.ParseStorageDriver(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}
	cfg.Storage.Driver = driver.String()

	switch driver {
	case enums.StorageDriverPostgres:
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	case enums.StorageDriverRedis:
		if cfg.Redis.URL == "" && cfg.Redis.Address == "" {
			return nil, fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"KITCART_APP_ENV" required:"true"`
	Port            string        `envconfig:"KITCART_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"KITCART_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"KITCART_LOG_WARN_STACK" default:"false"`
	LogFormat       string        `envconfig:"KITCART_LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"KITCART_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"KITCART_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver      string        `envconfig:"KITCART_STORAGE_DRIVER" default:"redis"`
	Namespace   string        `envconfig:"KITCART_STORAGE_NAMESPACE" default:"kitcart:cart"`
	KeyTTL      time.Duration `envconfig:"KITCART_STORAGE_KEY_TTL" default:"0"`
	AutoMigrate bool          `envconfig:"KITCART_AUTO_MIGRATE" default:"false"`
}

// DriverKind returns the parsed storage driver. Load has already validated it.
func (s StorageConfig) DriverKind() enums.StorageDriver {
	driver, err := enums.ParseStorageDriver(s.Driver)
	if err != nil {
		return enums.StorageDriverMemory
	}
	return driver
}

type DBConfig struct {
	DSN        string `envconfig:"KITCART_DB_DSN"`
	SQLitePath string `envconfig:"KITCART_SQLITE_PATH" default:"kitcart.db"`

	LegacyHost     string `envconfig:"KITCART_DB_HOST"`
	LegacyPort     int    `envconfig:"KITCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KITCART_DB_USER"`
	LegacyPassword string `envconfig:"KITCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"KITCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"KITCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KITCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KITCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KITCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KITCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KITCART_REDIS_URL"`
	Address      string        `envconfig:"KITCART_REDIS_ADDR"`
	Password     string        `envconfig:"KITCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"KITCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KITCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KITCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KITCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KITCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KITCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	// Path is optional; the embedded catalog is used when empty.
	Path string `envconfig:"KITCART_CATALOG_PATH"`
}

type SessionConfig struct {
	CookieName   string        `envconfig:"KITCART_SESSION_COOKIE_NAME" default:"kitcart_session"`
	CookieSecure bool          `envconfig:"KITCART_SESSION_COOKIE_SECURE" default:"false"`
	CookieMaxAge time.Duration `envconfig:"KITCART_SESSION_COOKIE_MAX_AGE" default:"720h"`
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
