package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// FrontendURL is where the gateway redirects the customer after checkout.
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:5173"`

	Mongo    MongoConfig
	Redis    RedisConfig
	S3       S3Config
	Paystack PaystackConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sizafi"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Endpoint        string        `env:"S3_ENDPOINT"`
	Region          string        `env:"S3_REGION, default=af-south-1"`
	Bucket          string        `env:"S3_BUCKET, default=sizafi-documents"`
	AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool          `env:"S3_USE_PATH_STYLE, default=false"`
	PresignTTL      time.Duration `env:"S3_PRESIGN_TTL, default=15m"`
}

type PaystackConfig struct {
	SecretKey string `env:"PAYSTACK_SECRET_KEY"`
	BaseURL   string `env:"PAYSTACK_BASE_URL, default=https://api.paystack.co"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
