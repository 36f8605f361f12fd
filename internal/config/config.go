package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Scheduled jobs (POST /ops/*)
	OpsAPIKey string

	// Session mirror
	RedisAddr  string
	SessionTTL time.Duration

	// File storage
	UploadDir          string
	UploadBaseURL      string
	UploadMaxMB        int64
	UploadAllowedTypes []string

	// Fee tiers (inclusive lower bounds, in commitment currency units)
	FeeTierBMin string
	FeeTierCMin string

	// Fund timeline (YYYY-MM-DD dates, terms in years from first close)
	FundFirstClose         string
	FundSubsequentClosings []string
	FundFinalClose         string
	FundCommitmentYears    int
	FundLifeYears          int

	// Bootstrap administrator
	AdminEmail    string
	AdminPassword string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fundportal"),
		DBPassword: getEnv("DB_PASSWORD", "fundportal"),
		DBName:     getEnv("DB_NAME", "fundportal"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "fundportal.db"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Scheduled jobs
		OpsAPIKey: getEnv("OPS_API_KEY", ""),

		// Session mirror
		RedisAddr: getEnv("REDIS_ADDR", ""),

		// File storage
		UploadDir:          getEnv("UPLOAD_DIR", "./static/uploads/documents"),
		UploadBaseURL:      getEnv("UPLOAD_BASE_URL", "/static/uploads/documents"),
		UploadAllowedTypes: splitList(getEnv("UPLOAD_ALLOWED_TYPES", ".pdf,.docx,.xlsx,.xls,.doc")),

		// Fee tiers
		FeeTierBMin: getEnv("FEE_TIER_B_MIN", "50000000"),
		FeeTierCMin: getEnv("FEE_TIER_C_MIN", "100000000"),

		// Fund timeline
		FundFirstClose:         getEnv("FUND_FIRST_CLOSE", "2021-03-15"),
		FundSubsequentClosings: splitList(getEnv("FUND_SUBSEQUENT_CLOSINGS", "2021-06-15,2021-09-15")),
		FundFinalClose:         getEnv("FUND_FINAL_CLOSE", ""),
		FundCommitmentYears:    getInt("FUND_COMMITMENT_YEARS", 3),
		FundLifeYears:          getInt("FUND_LIFE_YEARS", 7),

		// Bootstrap administrator
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 15*time.Minute)
	config.SessionTTL = getDuration("SESSION_TTL", 30*time.Minute)

	maxMBStr := getEnv("UPLOAD_MAX_MB", "10")
	maxMB, err := strconv.ParseInt(maxMBStr, 10, 64)
	if err != nil || maxMB <= 0 {
		log.Printf("Warning: invalid UPLOAD_MAX_MB value '%s', falling back to 10\n", maxMBStr)
		maxMB = 10
	}
	config.UploadMaxMB = maxMB

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
