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
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	OTP           OTPConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	SMTP          SMTPConfig
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
	Env          string `envconfig:"STYLEHAVEN_APP_ENV" required:"true"`
	Port         string `envconfig:"STYLEHAVEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STYLEHAVEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STYLEHAVEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"STYLEHAVEN_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"STYLEHAVEN_DB_DSN"`
	Driver string `envconfig:"STYLEHAVEN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STYLEHAVEN_DB_HOST"`
	LegacyPort     int    `envconfig:"STYLEHAVEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STYLEHAVEN_DB_USER"`
	LegacyPassword string `envconfig:"STYLEHAVEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"STYLEHAVEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"STYLEHAVEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STYLEHAVEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STYLEHAVEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STYLEHAVEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STYLEHAVEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STYLEHAVEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STYLEHAVEN_REDIS_ADDR"`
	Password     string        `envconfig:"STYLEHAVEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"STYLEHAVEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STYLEHAVEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STYLEHAVEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STYLEHAVEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STYLEHAVEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STYLEHAVEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"STYLEHAVEN_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"STYLEHAVEN_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"STYLEHAVEN_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"STYLEHAVEN_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STYLEHAVEN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STYLEHAVEN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STYLEHAVEN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STYLEHAVEN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STYLEHAVEN_ARGON_KEY_LEN" default:"32"`
}

type OTPConfig struct {
	TTL         time.Duration `envconfig:"STYLEHAVEN_OTP_TTL" default:"5m"`
	MaxAttempts int           `envconfig:"STYLEHAVEN_OTP_MAX_ATTEMPTS" default:"5"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	OTPWindow          time.Duration `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_OTP_WINDOW" default:"1m"`
	OTPEmailLimit      int           `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit         int           `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"STYLEHAVEN_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STYLEHAVEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STYLEHAVEN_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"STYLEHAVEN_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"STYLEHAVEN_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"STYLEHAVEN_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"STYLEHAVEN_PUBSUB_NOTIFICATION_TOPIC" default:"sh-notification-events"`
	NotificationSubscription string `envconfig:"STYLEHAVEN_PUBSUB_NOTIFICATION_SUBSCRIPTION" required:"true"`
}

type SMTPConfig struct {
	Host     string `envconfig:"STYLEHAVEN_SMTP_HOST"`
	Port     int    `envconfig:"STYLEHAVEN_SMTP_PORT" default:"587"`
	Username string `envconfig:"STYLEHAVEN_SMTP_USERNAME"`
	Password string `envconfig:"STYLEHAVEN_SMTP_PASSWORD"`
	From     string `envconfig:"STYLEHAVEN_SMTP_FROM" default:"no-reply@stylehaven.shop"`
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
