package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Gemini   GeminiConfig
	Insight  InsightConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	Token          string
	BaseURL        string
	GraphQLURL     string
	RepoCap        int
	ReposPerPage   int
	ActivitySource string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type InsightConfig struct {
	TTLHours int
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./insight.db"),
		},
		GitHub: GitHubConfig{
			Token:          getEnv("GITHUB_TOKEN", ""),
			BaseURL:        getEnv("GITHUB_API_URL", "https://api.github.com"),
			GraphQLURL:     getEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
			RepoCap:        getEnvAsInt("REPO_CAP", 100),
			ReposPerPage:   getEnvAsInt("REPOS_PER_PAGE", 100),
			ActivitySource: getEnv("ACTIVITY_SOURCE", "events"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Insight: InsightConfig{
			TTLHours: getEnvAsInt("INSIGHT_TTL_HOURS", 24),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
