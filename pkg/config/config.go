package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Purge    PurgeConfig
	Features FeatureFlagsConfig
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
	Env          string `envconfig:"RABUSTE_APP_ENV" required:"true"`
	Port         string `envconfig:"RABUSTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RABUSTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RABUSTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RABUSTE_DB_DSN"`
	Driver string `envconfig:"RABUSTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RABUSTE_DB_HOST"`
	LegacyPort     int    `envconfig:"RABUSTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RABUSTE_DB_USER"`
	LegacyPassword string `envconfig:"RABUSTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"RABUSTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"RABUSTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RABUSTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RABUSTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RABUSTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RABUSTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RABUSTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RABUSTE_REDIS_ADDR"`
	Password     string        `envconfig:"RABUSTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RABUSTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RABUSTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RABUSTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RABUSTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RABUSTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RABUSTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"RABUSTE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"RABUSTE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"RABUSTE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"RABUSTE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// PasswordConfig holds the Argon2id parameters embedded in password hashes.
type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RABUSTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RABUSTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RABUSTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RABUSTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RABUSTE_ARGON_KEY_LEN" default:"32"`
}

// PurgeConfig bounds the sold-artwork sweep triggered on order completion.
type PurgeConfig struct {
	SoftDeadline time.Duration `envconfig:"RABUSTE_PURGE_SOFT_DEADLINE" default:"30s"`
	UserBatch    int           `envconfig:"RABUSTE_PURGE_USER_BATCH" default:"200"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RABUSTE_AUTO_MIGRATE" default:"false"`
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
