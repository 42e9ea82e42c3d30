package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Naver Commerce API application credentials
	NaverClientID     string
	NaverClientSecret string

	// Endpoints
	TokenURL   string
	APIBaseURL string

	// Polling / token lifecycle (seconds)
	PollIntervalSeconds       int
	TokenExpiresInSeconds     int
	TokenRefreshBufferSeconds int

	// Outbound proxy
	UseProxy  bool
	ProxyHost string
	ProxyPort int

	// Sinks
	OrderLogDir string
	DatabaseURL string

	// Kafka
	KafkaEnabled bool
	KafkaBrokers string

	// API Configuration
	APIPort string
	APIHost string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		NaverClientID:             getEnv("NAVER_CLIENT_ID", ""),
		NaverClientSecret:         getEnv("NAVER_CLIENT_SECRET", ""),
		TokenURL:                  getEnv("NAVER_TOKEN_URL", "https://api.commerce.naver.com/external/v1/oauth2/token"),
		APIBaseURL:                getEnv("NAVER_API_BASE_URL", "https://api.commerce.naver.com"),
		PollIntervalSeconds:       getEnvAsInt("POLL_INTERVAL_SECONDS", 30),
		TokenExpiresInSeconds:     getEnvAsInt("TOKEN_EXPIRES_IN_SECONDS", 10800),
		TokenRefreshBufferSeconds: getEnvAsInt("TOKEN_REFRESH_BUFFER_SECONDS", 300),
		UseProxy:                  getEnvAsBool("USE_PROXY", false),
		ProxyHost:                 getEnv("PROXY_HOST", ""),
		ProxyPort:                 getEnvAsInt("PROXY_PORT", 3128),
		OrderLogDir:               getEnv("ORDER_LOG_DIR", "order_logs"),
		DatabaseURL:               getEnv("DATABASE_URL", "sqlite://orderwatch.db"),
		KafkaEnabled:              getEnvAsBool("KAFKA_ENABLED", false),
		KafkaBrokers:              getEnv("KAFKA_BROKERS", "localhost:9092"),
		APIPort:                   getEnv("API_PORT", "8080"),
		APIHost:                   getEnv("API_HOST", "0.0.0.0"),
		Env:                       getEnv("ENV", "development"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
	}, nil
}

// ProxyURL returns the outbound proxy address, or "" when disabled.
func (c *Config) ProxyURL() string {
	if !c.UseProxy || c.ProxyHost == "" {
		return ""
	}
	return "http://" + c.ProxyHost + ":" + strconv.Itoa(c.ProxyPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
