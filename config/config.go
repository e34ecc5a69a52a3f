package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Registration uniqueness strategies. Strict prechecks the email before
// inserting; constraint-only inserts and lets the unique index arbitrate.
var (
	RegisterModeStrict         = "strict"
	RegisterModeConstraintOnly = "constraint-only"
)

type Config struct {
	AppPort      string
	AppMode      string
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	JWTSecret    string
	JWTExpiryMin int
	BcryptCost   int
	RegisterMode string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "8080"),
		AppMode:      getEnv("APP_MODE", "debug"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "user_management"),
		DBPort:       getEnv("DB_PORT", "5432"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", 60),
		BcryptCost:   getEnvAsInt("BCRYPT_COST", 10),
		RegisterMode: getEnv("REGISTER_MODE", RegisterModeStrict),
	}

	// The signing key is the one setting with no fallback.
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if cfg.RegisterMode != RegisterModeStrict && cfg.RegisterMode != RegisterModeConstraintOnly {
		return nil, errors.New("REGISTER_MODE must be \"strict\" or \"constraint-only\"")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
