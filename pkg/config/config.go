package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable consumed by the service.
	EnvPrefix = "ADSYNC"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ADSYNC_DB_DSN"
	EnvDBHost = "ADSYNC_DB_HOST"
	EnvDBUser = "ADSYNC_DB_USER"
	EnvDBName = "ADSYNC_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	Integration IntegrationConfig
	Seed        SeedConfig
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
	ServiceName  string `envconfig:"ADSYNC_SERVICE_NAME" default:"core-api"`
	Env          string `envconfig:"ADSYNC_APP_ENV" default:"dev"`
	Port         string `envconfig:"ADSYNC_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"ADSYNC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ADSYNC_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"ADSYNC_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ADSYNC_DB_DSN"`
	Driver string `envconfig:"ADSYNC_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ADSYNC_DB_HOST"`
	LegacyPort     int    `envconfig:"ADSYNC_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ADSYNC_DB_USER"`
	LegacyPassword string `envconfig:"ADSYNC_DB_PASSWORD"`
	LegacyName     string `envconfig:"ADSYNC_DB_NAME"`
	LegacySSLMode  string `envconfig:"ADSYNC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ADSYNC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ADSYNC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ADSYNC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ADSYNC_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ReconnectBaseDelay time.Duration `envconfig:"ADSYNC_DB_RECONNECT_BASE_DELAY" default:"1s"`
	ReconnectMaxDelay  time.Duration `envconfig:"ADSYNC_DB_RECONNECT_MAX_DELAY" default:"30s"`
	PingInterval       time.Duration `envconfig:"ADSYNC_DB_PING_INTERVAL" default:"15s"`
}

// RedisConfig is optional: when URL is empty the idempotency layer stays off.
type RedisConfig struct {
	URL          string        `envconfig:"ADSYNC_REDIS_URL"`
	Password     string        `envconfig:"ADSYNC_REDIS_PASSWORD"`
	DB           int           `envconfig:"ADSYNC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ADSYNC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ADSYNC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ADSYNC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ADSYNC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ADSYNC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type IntegrationConfig struct {
	APIURL  string        `envconfig:"ADSYNC_INTEGRATION_API_URL" default:"http://integration-api:4000"`
	Timeout time.Duration `envconfig:"ADSYNC_INTEGRATION_TIMEOUT" default:"10s"`
}

type SeedConfig struct {
	Countries bool `envconfig:"ADSYNC_SEED_COUNTRIES" default:"true"`
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
