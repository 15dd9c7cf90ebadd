package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Voice provider configuration
	VoiceAPIKey string
	VoiceAPIURL string
	BaseURL     string // public base URL the provider posts webhooks back to
	// Market data configuration
	QuoteServiceURL string // optional aggregator tried before direct exchange APIs
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// Voice provider
		VoiceAPIKey: getEnv("VOICE_API_KEY", ""),
		VoiceAPIURL: getEnv("VOICE_API_URL", "https://api.bland.ai/v1"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		// Market data
		QuoteServiceURL: getEnv("QUOTE_SERVICE_URL", ""),
		// Debug defaults on outside prod
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
