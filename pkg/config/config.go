package config

import (
	"fmt"
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
	Cloudinary    CloudinaryConfig
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
	Env          string `envconfig:"GIGWORK_APP_ENV" required:"true"`
	Port         string `envconfig:"GIGWORK_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"GIGWORK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GIGWORK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GIGWORK_DB_DSN"`
	Driver string `envconfig:"GIGWORK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GIGWORK_DB_HOST"`
	LegacyPort     int    `envconfig:"GIGWORK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GIGWORK_DB_USER"`
	LegacyPassword string `envconfig:"GIGWORK_DB_PASSWORD"`
	LegacyName     string `envconfig:"GIGWORK_DB_NAME"`
	LegacySSLMode  string `envconfig:"GIGWORK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GIGWORK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GIGWORK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GIGWORK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GIGWORK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either GIGWORK_DB_DSN or host/user/name parts are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.LegacyHost, d.LegacyPort, d.LegacyUser, d.LegacyPassword, d.LegacyName, d.LegacySSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"GIGWORK_REDIS_URL"`
	Address      string        `envconfig:"GIGWORK_REDIS_ADDR"`
	Password     string        `envconfig:"GIGWORK_REDIS_PASSWORD"`
	DB           int           `envconfig:"GIGWORK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GIGWORK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GIGWORK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GIGWORK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GIGWORK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GIGWORK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"GIGWORK_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"GIGWORK_JWT_ISSUER" default:"gigwork"`
	// Session cookie and token share a fixed 7-day expiry.
	ExpirationMinutes int `envconfig:"GIGWORK_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// SessionTTL returns the access token / session cookie lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GIGWORK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GIGWORK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GIGWORK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GIGWORK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GIGWORK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"GIGWORK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"GIGWORK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"GIGWORK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"GIGWORK_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"GIGWORK_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"GIGWORK_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"GIGWORK_CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"GIGWORK_CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"GIGWORK_CLOUDINARY_API_SECRET"`
	Folder    string `envconfig:"GIGWORK_CLOUDINARY_FOLDER" default:"gigwork/profiles"`
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GIGWORK_AUTO_MIGRATE" default:"false"`
	UseSQLite   bool `envconfig:"GIGWORK_USE_SQLITE" default:"false"`
}
