package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App         AppConfig
	Paths       PathsConfig
	Database    DatabaseConfig
	Serp        SerpConfig
	HuggingFace HuggingFaceConfig
	Gemini      GeminiConfig
	Cache       CacheConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasePath           string
	BaseUrl            string
	BasicAuth          []string
	TrustedProxies     []string
	CorsAllowedOrigins []string
}

type PathsConfig struct {
	Storages string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB name for Postgres

	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

// SerpConfig drives the search provider calls.
type SerpConfig struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
	CountryCode string // gl
	Language    string // hl
}

// HuggingFaceConfig drives the image generation provider.
type HuggingFaceConfig struct {
	APIKey         string
	ModelURL       string
	Model          string
	Timeout        time.Duration
	MaxAttempts    int
	BackoffBase    time.Duration
	GuidanceScale  float64
	InferenceSteps int
	Width          int
	Height         int
}

type GeminiConfig struct {
	APIKey     string
	ImageModel string
	TextModel  string
}

// CacheConfig holds the TTL windows for each cached read path.
type CacheConfig struct {
	SearchTTL      time.Duration
	CollectionsTTL time.Duration
	ThumbnailTTL   time.Duration
}

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_STORAGES_PATH", "storages")

	debug := getEnvBool("APP_DEBUG", false)
	if getEnvBool("DEBUG", false) {
		debug = true
	}

	var basicAuth []string
	if v := getEnv("APP_BASIC_AUTH", ""); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.3.0",
		Port:               getEnv("APP_PORT", "5000"),
		Debug:              debug,
		Environment:        getEnv("APP_ENV", "development"),
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:5000"),
		BasicAuth:          basicAuth,
		CorsAllowedOrigins: corsOrigins,
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	dbCfg := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "sqlite"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", filepath.Join(storages, "creatorlens.db")),

		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "clens:"),
	}

	serpCfg := SerpConfig{
		APIKey:      getEnv("SERP_API_KEY", ""),
		BaseURL:     getEnv("SERP_API_BASE_URL", "https://serpapi.com/search"),
		Timeout:     getEnvDuration("SERP_TIMEOUT", 10*time.Second),
		MaxAttempts: getEnvInt("SERP_MAX_ATTEMPTS", 2),
		BackoffBase: getEnvDuration("SERP_BACKOFF_BASE", 500*time.Millisecond),
		CountryCode: getEnv("SERP_GL", "us"),
		Language:    getEnv("SERP_HL", "en"),
	}

	hfCfg := HuggingFaceConfig{
		APIKey:         getEnv("HUGGINGFACE_API_KEY", ""),
		ModelURL:       getEnv("HUGGINGFACE_MODEL_URL", "https://api-inference.huggingface.co/models/black-forest-labs/FLUX.1-dev"),
		Model:          getEnv("HUGGINGFACE_MODEL", "FLUX.1-dev"),
		Timeout:        getEnvDuration("HUGGINGFACE_TIMEOUT", 60*time.Second),
		MaxAttempts:    getEnvInt("HUGGINGFACE_MAX_ATTEMPTS", 2),
		BackoffBase:    getEnvDuration("HUGGINGFACE_BACKOFF_BASE", time.Second),
		GuidanceScale:  7.5,
		InferenceSteps: 30,
		Width:          1024,
		Height:         576,
	}

	geminiCfg := GeminiConfig{
		APIKey:     getEnv("GEMINI_API_KEY", ""),
		ImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		TextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
	}

	cacheCfg := CacheConfig{
		SearchTTL:      getEnvDuration("CACHE_SEARCH_TTL", 30*time.Minute),
		CollectionsTTL: getEnvDuration("CACHE_COLLECTIONS_TTL", 30*time.Minute),
		ThumbnailTTL:   getEnvDuration("CACHE_THUMBNAIL_TTL", 24*time.Hour),
	}

	return &Config{
		App:         appCfg,
		Paths:       PathsConfig{Storages: storages},
		Database:    dbCfg,
		Serp:        serpCfg,
		HuggingFace: hfCfg,
		Gemini:      geminiCfg,
		Cache:       cacheCfg,
	}, nil
}
