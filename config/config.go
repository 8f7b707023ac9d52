package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Settings holds every environment-driven knob the process reads.
// Loaded once in main and passed down; nothing else touches os.Getenv.
type Settings struct {
	Port string
	Env  string

	// Database: DATABASE_URL wins, otherwise discrete DB_* vars,
	// otherwise a local SQLite file.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLitePath  string

	JWTSecret []byte
	JWTExpiry time.Duration

	FirebaseProjectID       string
	FirebaseCredentialsPath string
	FirebaseCredentialsJSON string
}

const defaultJWTSecret = "coffee_shop_super_secret_2024"

// Load reads settings from the environment, falling back to dev defaults.
func Load(log *zap.Logger) *Settings {
	s := &Settings{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "coffee_shop"),
		SQLitePath:  getEnv("SQLITE_PATH", "coffee_shop.db"),

		JWTSecret: []byte(getEnv("JWT_SECRET", defaultJWTSecret)),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 24, log)) * time.Hour,

		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsPath: getEnv("FIREBASE_ADMIN_SDK_PATH", "firebase-admin-sdk.json"),
		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
	}

	if string(s.JWTSecret) == defaultJWTSecret && s.Env != "development" {
		log.Warn("JWT_SECRET not set, using built-in default", zap.String("env", s.Env))
	}

	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int, log *zap.Logger) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("invalid integer in environment", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return n
}
