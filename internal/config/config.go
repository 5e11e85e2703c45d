package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the key/value connection string used by the GORM driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// DatabaseURL returns the URL form used by golang-migrate.
func (c DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// JWTConfig holds the shared secret used to verify backend access tokens.
type JWTConfig struct {
	Secret string
}

// KafkaConfig holds broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// RedisConfig holds the edit-buffer store settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BackofficeConfig points at the REST backend the wizard submits to.
type BackofficeConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls login session expiry and draft retention.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	EditBufferTTL time.Duration
}

// ServiceConfig holds all configuration for the booking wizard service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	CORSOrigins      []string
	DBConfig         DatabaseConfig
	JWTConfig        JWTConfig
	KafkaConfig      KafkaConfig
	RedisConfig      RedisConfig
	BackofficeConfig BackofficeConfig
	SessionConfig    SessionConfig
}

// Load reads configuration from the environment (prefix BOOKING_), after
// loading a local .env file when one exists.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BOOKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &ServiceConfig{
		Port:        normalizePort(v.GetString("SERVICE_PORT")),
		AppEnv:      v.GetString("APP_ENV"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		RedisConfig: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		BackofficeConfig: BackofficeConfig{
			BaseURL: strings.TrimRight(v.GetString("BACKOFFICE_URL"), "/"),
			Timeout: v.GetDuration("BACKOFFICE_TIMEOUT"),
		},
		SessionConfig: SessionConfig{
			TTL:           v.GetDuration("SESSION_TTL"),
			SweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),
			EditBufferTTL: v.GetDuration("EDIT_BUFFER_TTL"),
		},
	}

	if cfg.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("BOOKING_JWT_SECRET is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("BOOKING_KAFKA_BROKERS is required")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_PORT", "8085")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "booking_wizard")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "tsaratour-")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BACKOFFICE_URL", "http://localhost:8000/api")
	v.SetDefault("BACKOFFICE_TIMEOUT", 20*time.Second)
	v.SetDefault("SESSION_TTL", 8*time.Hour)
	v.SetDefault("SESSION_SWEEP_INTERVAL", time.Minute)
	v.SetDefault("EDIT_BUFFER_TTL", 24*time.Hour)
}

func normalizePort(p string) string {
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
