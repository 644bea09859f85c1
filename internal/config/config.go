package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppEnv string
	Port   string

	DB    DBConfig
	Redis RedisConfig
	Kafka KafkaConfig
	Auth  AuthConfig
	HTTP  HTTPConfig

	GraphQLMaxDepth int
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	// Addr is optional; the catalog cache is disabled when empty.
	Addr string
}

type KafkaConfig struct {
	Broker       string
	PollInterval time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type HTTPConfig struct {
	FrontendURL  string
	RateLimit    float64
	RateBurst    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

const devJWTSecret = "dev-secret-change-me"

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required in production")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", "4000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hr_management")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 30)

	v.SetDefault("GRAPHQL_MAX_DEPTH", 10)
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv: strings.ToLower(v.GetString("APP_ENV")),
		Port:   v.GetString("PORT"),
		DB: DBConfig{
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("REDIS_ADDR"),
		},
		Kafka: KafkaConfig{
			Broker:       v.GetString("KAFKA_BROKER"),
			PollInterval: v.GetDuration("OUTBOX_POLL_INTERVAL"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("JWT_TTL"),
		},
		HTTP: HTTPConfig{
			FrontendURL:  v.GetString("FRONTEND_URL"),
			RateLimit:    v.GetFloat64("RATE_LIMIT_RPS"),
			RateBurst:    v.GetInt("RATE_LIMIT_BURST"),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		GraphQLMaxDepth: v.GetInt("GRAPHQL_MAX_DEPTH"),
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		cfg.Auth.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
