package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Log is the application-wide structured logger. Handlers must never log
// credentials or password-check outcomes through it.
var Log = logrus.New()

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "school_meals_super_secret_2024"))

// LoadEnv reads a .env file if present, then re-reads the secret so a file
// value wins over the compiled fallback.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		Log.Info("Loaded configuration from .env")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "school_meals_super_secret_2024"))

	if getEnv("LOG_FORMAT", "") == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		Log.SetLevel(lvl)
	}
}

// Port returns the HTTP listen port.
func Port() string {
	return getEnv("PORT", "8080")
}

// DBPath returns the sqlite database location.
func DBPath() string {
	return getEnv("DB_PATH", "school_meals.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
