package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported JOB_STORE values.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Job storage.
	JobStore     string `mapstructure:"JOB_STORE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	PostgresURL  string `mapstructure:"POSTGRES_URL"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`

	// Redis configuration.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`
	LookupCacheTTL time.Duration `mapstructure:"LOOKUP_CACHE_TTL"`

	// Admin credential, plain or bcrypt hashed.
	AdminAPIKey     string `mapstructure:"ADMIN_API_KEY"`
	AdminAPIKeyHash string `mapstructure:"ADMIN_API_KEY_HASH"`

	// Twilio SMS.
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`
	SMSAsync         bool   `mapstructure:"SMS_ASYNC"`

	// Lookups.
	DVLAMode        string `mapstructure:"DVLA_MODE"`
	DVLAAPIKey      string `mapstructure:"DVLA_API_KEY"`
	DVLAAPIURL      string `mapstructure:"DVLA_API_URL"`
	PostcodesAPIURL string `mapstructure:"POSTCODES_API_URL"`

	CatalogPath string `mapstructure:"CATALOG_PATH"`

	// Gemini, used to tidy the clarifier summary.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	v.SetDefault("JOB_STORE", StoreMongo)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "mechanicbook")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("SQLITE_PATH", "mechanicbook.db")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("LOOKUP_CACHE_TTL", "24h")

	v.SetDefault("ADMIN_API_KEY", "")
	v.SetDefault("ADMIN_API_KEY_HASH", "")

	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_FROM_NUMBER", "")
	v.SetDefault("SMS_ASYNC", false)

	v.SetDefault("DVLA_MODE", "stub")
	v.SetDefault("DVLA_API_KEY", "")
	v.SetDefault("DVLA_API_URL", "https://driver-vehicle-licensing.api.gov.uk/vehicle-enquiry/v1/vehicles")
	v.SetDefault("POSTCODES_API_URL", "https://api.postcodes.io")

	v.SetDefault("CATALOG_PATH", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// TwilioConfigured reports whether every Twilio credential is present.
func (c Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// AdminConfigured reports whether an admin credential has been set.
func (c Config) AdminConfigured() bool {
	return c.AdminAPIKey != "" || c.AdminAPIKeyHash != ""
}
