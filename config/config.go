package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host           string
	Port           string
	Env            string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RequestTimeout time.Duration
}

// Load reads configuration from a .env file when present, falling back to
// system environment variables and hard-coded defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	return Config{
		Host:           getEnv("HOST_URL", "localhost"),
		Port:           getEnv("HOST_PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		DBHost:         getEnv("POSTGRES_HOST", "localhost"),
		DBPort:         getEnv("POSTGRES_PORT", "5432"),
		DBUser:         getEnv("POSTGRES_USER", "postgres"),
		DBPassword:     getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:         getEnv("POSTGRES_DB", "resturant"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 5*time.Second),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
