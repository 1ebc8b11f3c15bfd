// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	AWS         AWSConfig
	Payment     PaymentConfig
	Email       EmailConfig
	I18n        I18nConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Seed        SeedConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"5000"`
	Host            string        `env:"SERVER_HOST" envDefault:"localhost"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	UploadsDir      string        `env:"UPLOADS_DIR" envDefault:"./uploads"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5000"`
}

type DatabaseConfig struct {
	Host         string        `env:"DB_HOST" envDefault:"localhost"`
	Port         string        `env:"DB_PORT" envDefault:"5432"`
	User         string        `env:"DB_USER" envDefault:"postgres"`
	Password     string        `env:"DB_PASSWORD"`
	Database     string        `env:"DB_NAME" envDefault:"shopwave"`
	SSLMode      string        `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	MaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
	LogLevel     string        `env:"DB_LOG_LEVEL" envDefault:"warn"`
}

type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TTL       time.Duration `env:"JWT_TTL" envDefault:"60m"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"shopwave"`
}

type CookieConfig struct {
	Name   string `env:"COOKIE_NAME" envDefault:"token"`
	Domain string `env:"COOKIE_DOMAIN"`
	Secure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

type RedisConfig struct {
	Enabled    bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Addr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB" envDefault:"0"`
	Prefix     string        `env:"REDIS_PREFIX" envDefault:"shopwave"`
	ProductTTL time.Duration `env:"REDIS_PRODUCT_TTL" envDefault:"10m"`
}

type KafkaConfig struct {
	Brokers      []string      `env:"KAFKA_BROKERS" envSeparator:","`
	OrderTopic   string        `env:"KAFKA_ORDER_TOPIC" envDefault:"shop.orders"`
	WriteTimeout time.Duration `env:"KAFKA_WRITE_TIMEOUT" envDefault:"5s"`
}

type AWSConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"ap-south-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket        string `env:"AWS_S3_BUCKET" envDefault:"shopwave-assets"`
	CloudFrontURL   string `env:"AWS_CLOUDFRONT_URL"`
	MaxUploadSize   int64  `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`
}

type PaymentConfig struct {
	Provider             string `env:"PAYMENT_PROVIDER" envDefault:"razorpay"`
	Currency             string `env:"PAYMENT_CURRENCY" envDefault:"INR"`
	RazorpayKeyID        string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret    string `env:"RAZORPAY_KEY_SECRET"`
	StripeSecretKey      string `env:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
}

type EmailConfig struct {
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FromEmail    string `env:"FROM_EMAIL" envDefault:"orders@shopwave.local"`
	FromName     string `env:"FROM_NAME" envDefault:"ShopWave"`
}

type I18nConfig struct {
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	LocalesPath   string `env:"LOCALES_PATH" envDefault:"./internal/i18n/locales"`
}

type RateLimitConfig struct {
	GeneralPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	GeneralBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
	AuthPerMinute    float64 `env:"RATE_LIMIT_AUTH_PER_MINUTE" envDefault:"10"`
	AuthBurst        int     `env:"RATE_LIMIT_AUTH_BURST" envDefault:"5"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminUserName string `env:"SEED_ADMIN_USERNAME" envDefault:"admin"`

	// Sample products make a fresh development database browsable.
	SampleProducts bool `env:"SEED_SAMPLE_PRODUCTS" envDefault:"false"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.JWT.SecretKey == defaultJWTSecret {
			return errors.New("JWT secret key must be changed in production")
		}
		if c.Database.Password == "" {
			return errors.New("database password is required in production")
		}
	}

	switch c.Payment.Provider {
	case "razorpay":
		if c.IsProduction() && (c.Payment.RazorpayKeyID == "" || c.Payment.RazorpayKeySecret == "") {
			return errors.New("razorpay key id and secret are required in production")
		}
	case "stripe":
		if c.IsProduction() && c.Payment.StripeSecretKey == "" {
			return errors.New("stripe secret key is required in production")
		}
	default:
		return fmt.Errorf("unsupported payment provider %q", c.Payment.Provider)
	}

	if c.JWT.TTL <= 0 {
		return errors.New("JWT TTL must be positive")
	}

	if c.RateLimit.GeneralPerSecond <= 0 || c.RateLimit.AuthPerMinute <= 0 {
		return errors.New("rate limits must be positive")
	}

	return nil
}
