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
	Env          string `envconfig:"TASKPLANNER_APP_ENV" required:"true"`
	Port         string `envconfig:"TASKPLANNER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TASKPLANNER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TASKPLANNER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TASKPLANNER_DB_DSN"`
	Driver string `envconfig:"TASKPLANNER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TASKPLANNER_DB_HOST"`
	LegacyPort     int    `envconfig:"TASKPLANNER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TASKPLANNER_DB_USER"`
	LegacyPassword string `envconfig:"TASKPLANNER_DB_PASSWORD"`
	LegacyName     string `envconfig:"TASKPLANNER_DB_NAME"`
	LegacySSLMode  string `envconfig:"TASKPLANNER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TASKPLANNER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TASKPLANNER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TASKPLANNER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TASKPLANNER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; an empty URL disables login rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"TASKPLANNER_REDIS_URL"`
	Address      string        `envconfig:"TASKPLANNER_REDIS_ADDR"`
	Password     string        `envconfig:"TASKPLANNER_REDIS_PASSWORD"`
	DB           int           `envconfig:"TASKPLANNER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TASKPLANNER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TASKPLANNER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TASKPLANNER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TASKPLANNER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TASKPLANNER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"TASKPLANNER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TASKPLANNER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TASKPLANNER_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TASKPLANNER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TASKPLANNER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TASKPLANNER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TASKPLANNER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TASKPLANNER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"TASKPLANNER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"TASKPLANNER_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"TASKPLANNER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TASKPLANNER_AUTO_MIGRATE" default:"false"`
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
