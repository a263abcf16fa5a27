package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Keys    APIKeys
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
}

// BackendConfig describes the business data backend. URL is what the
// dashboard talks to, Port is where cmd/backend listens.
type BackendConfig struct {
	URL            string
	Port           string
	RequestTimeout time.Duration
}

type APIKeys struct {
	GoogleGemini string
	GeminiModel  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "8080"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "dashboard.log"),
		},
		Backend: BackendConfig{
			URL:            getEnv("BACKEND_URL", "http://localhost:8081"),
			Port:           getEnv("BACKEND_PORT", "8081"),
			RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		},
	}
}

// IsProduction reports whether GO_ENV selects production behaviour
// (JSON console logs, gin release mode).
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
