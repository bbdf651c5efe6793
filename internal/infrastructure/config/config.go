package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PredictorConfig struct {
	// BaseURL of the remote credit-score model service. Empty disables the
	// remote predictor entirely; the local fallback always remains.
	BaseURL string
	Timeout time.Duration
	// UseStub swaps in the deterministic in-process predictor. Dev and
	// test environments only; ignored when BaseURL is set.
	UseStub bool
}

type Config struct {
	HTTPPort      int
	MetricsPort   int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Redis         RedisConfig
	Predictor     PredictorConfig
	LogLevel      string
	LogFormat     string
	MigrationsDir string
	ServiceName   string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loans"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "nbfc_loans"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "lending.events"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Predictor: PredictorConfig{
			BaseURL: getEnv("ML_SERVICE_URL", ""),
			Timeout: getEnvDuration("ML_SERVICE_TIMEOUT", 5*time.Second),
			UseStub: getEnvBool("ML_SERVICE_USE_STUB", false),
		},
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "file://./migrations"),
		ServiceName:   "underwriting-engine",
	}
}

// LoadPolicy reads the underwriting thresholds, falling back to the
// standard policy set for anything unset.
func LoadPolicy() service.Policy {
	p := service.DefaultPolicy()
	p.MinCreditScore = getEnvInt("MIN_CREDIT_SCORE", p.MinCreditScore)
	p.MaxDTIRatio = getEnvFloat("MAX_DTI_RATIO", p.MaxDTIRatio)
	p.MinLoanAmount = getEnvDecimal("MIN_LOAN_AMOUNT", p.MinLoanAmount)
	p.MaxLoanAmount = getEnvDecimal("MAX_LOAN_AMOUNT", p.MaxLoanAmount)
	p.MinRequiredDocs = getEnvInt("MIN_REQUIRED_DOCS", p.MinRequiredDocs)
	p.RateExcellentPct = getEnvFloat("INTEREST_RATE_EXCELLENT", p.RateExcellentPct)
	p.RateGoodPct = getEnvFloat("INTEREST_RATE_GOOD", p.RateGoodPct)
	p.RateFairPct = getEnvFloat("INTEREST_RATE_FAIR", p.RateFairPct)
	p.DTICapPct = getEnvFloat("DTI_CAP_PCT", p.DTICapPct)
	return p
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
