package config

import "os"

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	GoogleClientIDs   string
	GeminiAPIKey      string
	GeminiModel       string
	FCMServiceAccount string
}

func Load() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "ponder.db"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:              getEnv("PORT", "8080"),
		GoogleClientIDs:   getEnv("GOOGLE_CLIENT_IDS", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		FCMServiceAccount: getEnv("FCM_SERVICE_ACCOUNT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
