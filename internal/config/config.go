package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	DeepLinkURL string

	ResendAPIKey string
	EmailFrom    string

	SupabaseURL        string
	SupabaseBucket     string
	SupabaseServiceKey string

	AppEnv string
}

// LoadConfig reads the environment. A missing required value is a fatal
// startup condition: the caller exits rather than degrading.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL, exists := os.LookupEnv("DB_URL")
	if !exists || dbURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	deepLinkURL, exists := os.LookupEnv("APP_DEEP_LINK_URL")
	if !exists || deepLinkURL == "" {
		return nil, fmt.Errorf("APP_DEEP_LINK_URL is required")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DBUrl:              dbURL,
		JWTSecret:          jwtSecret,
		DeepLinkURL:        strings.TrimRight(deepLinkURL, "/"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "FitSense <noreply@fitsense.app>"),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseBucket:     getEnv("SUPABASE_BUCKET", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		AppEnv:             normalizeEnv(getEnv("APP_ENV", "production")),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
