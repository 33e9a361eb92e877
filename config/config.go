package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     ServerConfig
	UPI      UPIConfig
	Admin    AdminConfig
	Storage  StorageConfig
	Log      LogConfig
	Payments PaymentsConfig
	Sweeper  SweeperConfig
}

type AppConfig struct {
	ServiceName string
	Version     string
}

type ServerConfig struct {
	Host string
	Port string
}

type UPIConfig struct {
	PayeeAddress string
	MerchantName string
	BusinessName string
	OrderPrefix  string
}

type AdminConfig struct {
	Username    string
	Password    string
	TokenSecret string
	TokenTTL    time.Duration
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

type PaymentsConfig struct {
	ExpiryWindow time.Duration
	MaxAmount    float64
	ListLimit    int
}

type SweeperConfig struct {
	Interval          time.Duration
	MinPendingAge     time.Duration
	VerifyProbability float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	tokenSecret := os.Getenv("ADMIN_TOKEN_SECRET")
	if tokenSecret == "" {
		return nil, errors.New("ADMIN_TOKEN_SECRET environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "upi-gateway"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		UPI: UPIConfig{
			PayeeAddress: getEnv("UPI_ID", "merchant@upi"),
			MerchantName: getEnv("MERCHANT_NAME", "UPI Store"),
			BusinessName: getEnv("BUSINESS_NAME", "UPI Gateway"),
			OrderPrefix:  getEnv("ORDER_PREFIX", "PAY"),
		},
		Admin: AdminConfig{
			Username:    getEnv("ADMIN_USERNAME", "admin"),
			Password:    getEnv("ADMIN_PASSWORD", "admin123"),
			TokenSecret: tokenSecret,
			TokenTTL:    getMinutesEnv("ADMIN_TOKEN_TTL_MINUTES", 60*time.Minute),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Payments: PaymentsConfig{
			ExpiryWindow: getMinutesEnv("PAYMENTS_EXPIRY_WINDOW_MINUTES", 10*time.Minute),
			MaxAmount:    getFloatEnv("PAYMENTS_MAX_AMOUNT", 100000),
			ListLimit:    getIntEnv("PAYMENTS_LIST_LIMIT", 100),
		},
		Sweeper: SweeperConfig{
			Interval:          getSecondsEnv("SWEEPER_INTERVAL_SECONDS", 30*time.Second),
			MinPendingAge:     getMinutesEnv("SWEEPER_MIN_PENDING_AGE_MINUTES", 2*time.Minute),
			VerifyProbability: getFloatEnv("SWEEPER_VERIFY_PROBABILITY", 0.4),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
