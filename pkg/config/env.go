// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv           string
	Port             string
	DBHost           string
	DBPort           string
	DBName           string
	DBUser           string
	DBPassword       string
	DBSchema         string
	JWTSecret        string
	RedisURL         string
	BibleAPIURL      string
	BibleAPIKey      string
	BibleLocalDir    string
	ChapterCacheTTL  time.Duration
	ReaderSessionTTL time.Duration
	ScrollDelay      time.Duration
	SwaggerHost      string
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBHost:           getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:           getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:           getEnv("BLUEPRINT_DB_DATABASE", "pocket_pastor"),
		DBUser:           getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword:       getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:         getEnv("BLUEPRINT_DB_SCHEMA", "public"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		BibleAPIURL:      getEnv("BIBLE_API_URL", "https://api.scripture.api.bible/v1"),
		BibleAPIKey:      getEnv("BIBLE_API_KEY", ""),
		BibleLocalDir:    getEnv("BIBLE_LOCAL_DIR", "./data/bibles"),
		ChapterCacheTTL:  getEnvDuration("CHAPTER_CACHE_TTL", 24*time.Hour),
		ReaderSessionTTL: getEnvDuration("READER_SESSION_TTL", 30*time.Minute),
		ScrollDelay:      time.Duration(getEnvInt("SCROLL_DELAY_MS", 300)) * time.Millisecond,
		SwaggerHost:      getEnv("SWAGGER_HOST", "localhost:8080"),
	}

	return cfg
}

// DatabaseURL builds the pgx connection string for the configured database.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSchema)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
