package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppEnv                 string
	AppPort                string
	AllowedOrigins         string
	DBDriver               string
	DBPath                 string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBMaxIdleConns         int
	DBMaxOpenConns         int
	SessionSecret          string
	SessionExpirationHours int
	AppPassword            string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	log.Println("Loading configuration...")

	return Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		AppPort:        getEnv("APP_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBPath:         getEnv("DB_PATH", "tasktrail.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "tasktrail"),
		DBPassword:     getEnv("DB_PASSWORD", "tasktrail"),
		DBName:         getEnv("DB_NAME", "tasktrail"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		// Insecure defaults, for local/demo use only.
		SessionSecret:          getEnv("SESSION_SECRET", "dev-secret-change-me"),
		SessionExpirationHours: getEnvAsInt("SESSION_EXPIRATION_HOURS", 24),
		AppPassword:            getEnv("APP_PASSWORD", "1234"),
	}
}
