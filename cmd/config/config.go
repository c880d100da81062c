package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const EnvironmentLocal = "Local"

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Auth        AuthConfig
	ExternalAPI ExternalAPIConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	CommandTimeout  time.Duration
	// MaxRetryCount is carried for deployments that share this configuration;
	// the data-access layer never retries.
	MaxRetryCount int
}

type AWSConfig struct {
	Region     string
	SecretName string
	Endpoint   string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

type AuthConfig struct {
	JWTSecret     string
	Issuer        string
	Audience      string
	Leeway        time.Duration
	JWTExpiration time.Duration
}

type ExternalAPIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetryCount int
	APIKey        string
	UserAgent     string
	WebhookPath   string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", EnvironmentLocal),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "sample_api"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			CommandTimeout:  getEnvDuration("DB_COMMAND_TIMEOUT", 30*time.Second),
			MaxRetryCount:   getEnvInt("DB_MAX_RETRY_COUNT", 3),
		},
		AWS: AWSConfig{
			Region:     getEnv("AWS_REGION", "ap-northeast-1"),
			SecretName: getEnv("AWS_SECRET_NAME", ""),
			Endpoint:   getEnv("AWS_ENDPOINT", ""),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getEnvBool("RABBITMQ_ENABLED", false),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", "SampleAPI"),
			Audience:      getEnv("JWT_AUDIENCE", "SampleAPI.Clients"),
			Leeway:        getEnvDuration("JWT_LEEWAY", 30*time.Second),
			JWTExpiration: getEnvDuration("JWT_EXPIRATION", time.Hour),
		},
		ExternalAPI: ExternalAPIConfig{
			BaseURL:       getEnv("EXTERNAL_API_BASE_URL", ""),
			Timeout:       getEnvDuration("EXTERNAL_API_TIMEOUT", 30*time.Second),
			MaxRetryCount: getEnvInt("EXTERNAL_API_MAX_RETRY_COUNT", 3),
			APIKey:        getEnv("EXTERNAL_API_KEY", ""),
			UserAgent:     getEnv("EXTERNAL_API_USER_AGENT", "SampleAPI/1.0"),
			WebhookPath:   getEnv("EXTERNAL_API_WEBHOOK_PATH", "/webhooks/users"),
		},
	}
}

func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Environment, EnvironmentLocal)
}

// Credentials returns the database credentials held in configuration.
func (d DatabaseConfig) Credentials() DatabaseCredentials {
	return DatabaseCredentials{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Name,
		Username: d.User,
		Password: d.Password,
	}
}

// DatabaseCredentials is resolved once at startup and never mutated.
type DatabaseCredentials struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

func (d DatabaseCredentials) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.Username
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	mc.DBName = d.Database
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN()
}

func (d DatabaseCredentials) String() string {
	return fmt.Sprintf("%s@%s:%d/%s", d.Username, d.Host, d.Port, d.Database)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvDuration accepts Go duration strings ("30s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
