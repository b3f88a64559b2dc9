package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Sheets    SheetsConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Test      TestConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	SeedOnStart bool
}

// SheetsConfig selects and locates the spreadsheet document.
type SheetsConfig struct {
	Backend         string // google or memory
	CredentialsFile string
	DocumentID      string
	TestDocumentID  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// TestConfig drives the live spreadsheet tests.
type TestConfig struct {
	CI    bool
	Sleep time.Duration
}

const (
	BackendGoogle = "google"
	BackendMemory = "memory"
)

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SEED_ON_START", true)
	viper.SetDefault("SHEETS_BACKEND", BackendGoogle)
	viper.SetDefault("GOOGLE_CREDENTIALS_FILEPATH", "google-credentials.json")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("CI", false)
	viper.SetDefault("TEST_SLEEP", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Env:         viper.GetString("SERVER_ENV"),
			SeedOnStart: viper.GetBool("SEED_ON_START"),
		},
		Sheets: SheetsConfig{
			Backend:         strings.ToLower(viper.GetString("SHEETS_BACKEND")),
			CredentialsFile: viper.GetString("GOOGLE_CREDENTIALS_FILEPATH"),
			DocumentID:      viper.GetString("GOOGLE_SHEETS_DOCUMENT_ID"),
			TestDocumentID:  viper.GetString("GOOGLE_SHEETS_TEST_DOCUMENT_ID"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Test: TestConfig{
			CI:    viper.GetBool("CI"),
			Sleep: time.Duration(viper.GetInt("TEST_SLEEP")) * time.Second,
		},
	}
}

// IsDevelopment reports whether the server runs outside production.
func (c ServerConfig) IsDevelopment() bool {
	return c.Env != "production"
}

// RateLimitEnabled reports whether a Redis server is configured.
func (c RedisConfig) RateLimitEnabled() bool {
	return c.Addr != ""
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
