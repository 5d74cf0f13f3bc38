package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds pipeline configuration.
type Config struct {
	AppName    string
	AppVersion string
	LogLevel   string

	Seed int64

	Volumes    VolumeConfig
	Generation GenerationConfig
	Validation ValidationConfig

	ReportsDir string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	DBPath     string
}

// VolumeConfig sets the target row counts per generated table.
type VolumeConfig struct {
	Customers     int
	Content       int
	Subscriptions int
	UsageLogs     int
}

// GenerationConfig sets the behavioral windows and weights shared by the
// generators. Days are counted back from the run's anchor time.
type GenerationConfig struct {
	SignupLookbackDays       int
	SubscriptionLookbackDays int
	UsageLookbackDays        int
	RecencyBoostDays         int
	WeekendBoost             float64
	RecencyBoost             float64
	EndDateProbability       float64
	AutoRenewProbability     float64
}

// ValidationConfig sets the rejection tolerance policy.
type ValidationConfig struct {
	// MaxRejectRate is the per-table rejection rate above which the verdict
	// flips to fail. Schema violations are always fatal regardless.
	MaxRejectRate float64
	// FailOnReject aborts the run before load when the tolerance is exceeded.
	FailOnReject bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:    getenv("APP_SERVICE", "dataforge"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),
		LogLevel:   getenv("LOG_LEVEL", "info"),

		Seed: getenvInt64("GENERATION_SEED", 42),

		Volumes: VolumeConfig{
			Customers:     getenvInt("VOLUME_CUSTOMERS", 1000),
			Content:       getenvInt("VOLUME_CONTENT", 300),
			Subscriptions: getenvInt("VOLUME_SUBSCRIPTIONS", 1200),
			UsageLogs:     getenvInt("VOLUME_USAGE_LOGS", 20000),
		},

		Generation: GenerationConfig{
			SignupLookbackDays:       getenvInt("SIGNUP_LOOKBACK_DAYS", 730),
			SubscriptionLookbackDays: getenvInt("SUBSCRIPTION_LOOKBACK_DAYS", 548),
			UsageLookbackDays:        getenvInt("USAGE_LOOKBACK_DAYS", 60),
			RecencyBoostDays:         getenvInt("RECENCY_BOOST_DAYS", 14),
			WeekendBoost:             getenvFloat("WEEKEND_BOOST", 1.5),
			RecencyBoost:             getenvFloat("RECENCY_BOOST", 1.5),
			EndDateProbability:       getenvFloat("END_DATE_PROBABILITY", 0.4),
			AutoRenewProbability:     getenvFloat("AUTO_RENEW_PROBABILITY", 0.7),
		},

		Validation: ValidationConfig{
			MaxRejectRate: getenvFloat("VALIDATION_MAX_REJECT_RATE", 0.01),
			FailOnReject:  getenvBool("VALIDATION_FAIL_ON_REJECT", false),
		},

		ReportsDir: getenv("REPORTS_DIR", "data/processed"),

		DBType:     getenv("DATABASE_TYPE", "sqlite"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "streaming"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),
		DBPath:     getenv("DATABASE_PATH", "streaming.db"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
