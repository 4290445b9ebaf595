package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole runtime configuration, loaded from the environment.
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	JWTExpiry   time.Duration
	Port        string
	CORSOrigins []string

	// TMDB ingestion
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBSyncSchedule string
	TMDBMoviePages   int
	TMDBTVPages      int

	// Generative AI
	AIProvider    string // "openai" or "gemini"
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))
	moviePages, _ := strconv.Atoi(getEnv("TMDB_MOVIE_PAGES", "500"))
	tvPages, _ := strconv.Atoi(getEnv("TMDB_TV_PAGES", "100"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "aifilm")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("WARNING: production is running with the default secret, set APP_SECRET now")
	}

	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:8080,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		AppSecret:   appSecret,
		DatabaseURL: dbURL,
		JWTExpiry:   time.Duration(expiryHours) * time.Hour,
		Port:        getEnv("PORT", "8000"),
		CORSOrigins: origins,

		TMDBAPIKey:       getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:      getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBSyncSchedule: getEnv("TMDB_SYNC_SCHEDULE", "0 3 * * *"),
		TMDBMoviePages:   moviePages,
		TMDBTVPages:      tvPages,

		AIProvider:    getEnv("AI_PROVIDER", "openai"),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
