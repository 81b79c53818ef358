package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"analyzer-backend/internal/analyses"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	GroqAPIKey      string
	LLMModel        string
	Analysis        analyses.Config
}

// Load reads configuration from environment variables with sensible
// defaults. Analysis tunables start from their defaults and can be
// overridden by the optional YAML file named in ANALYZER_CONFIG.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	analysis := analyses.DefaultConfig()
	if path := os.Getenv("ANALYZER_CONFIG"); path != "" {
		if err := applyTunables(path, &analysis); err != nil {
			log.Printf("failed to load tunables from %s: %v", path, err)
		}
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		Env:             getEnv("ENV", "dev"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		LLMModel:        os.Getenv("LLM_MODEL"),
		Analysis:        analysis,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("failed to load env file %s: %v", path, err)
		}
	}
}
