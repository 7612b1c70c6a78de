package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	SupabaseURL        string
	SupabaseServiceKey string
	GeminiAPIKey       string
	HuggingFaceToken   string
	RedisURI           string // optional; per-user rate ceilings are disabled without it
	Port               string
	AllowedOrigins     []string // CORS: from ALLOWED_ORIGINS, comma-separated
	PerUserRateLimit   string   // e.g. "5/minute", applies to the summary endpoint per user
	GlobalRateLimit    string   // e.g. "60/minute", applies to the summary endpoint globally
	APITimeout         time.Duration
}

// Load reads configuration from the environment. A missing required value
// is an error; the process must not start without it.
func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		HuggingFaceToken:   os.Getenv("HUGGINGFACE_TOKEN"),
		RedisURI:           os.Getenv("REDIS_URI"),
		Port:               getEnv("PORT", "8080"),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		PerUserRateLimit:   getEnv("GEMINI_RATE_LIMIT_PER_USER", "5/minute"),
		GlobalRateLimit:    getEnv("GEMINI_GLOBAL_RATE_LIMIT", "60/minute"),
	}

	timeoutSeconds := getEnv("API_TIMEOUT_SECONDS", "5")
	seconds, err := strconv.Atoi(timeoutSeconds)
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("invalid API_TIMEOUT_SECONDS %q: must be a positive integer", timeoutSeconds)
	}
	cfg.APITimeout = time.Duration(seconds) * time.Second

	var missing []string
	if cfg.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.SupabaseServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
