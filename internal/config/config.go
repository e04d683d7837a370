// Package config loads the server settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort      = "3000"
	DefaultStaticDir = "public"

	// PresenceTTL bounds how long a mirrored online count outlives the process.
	PresenceTTL = 2 * time.Minute
)

// Config holds everything the server needs at startup.
type Config struct {
	Port      string
	StaticDir string
	GinMode   string

	// RedisAddr enables the presence mirror when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads .env (if any) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		Port:          getEnv("PORT", DefaultPort),
		StaticDir:     getEnv("STATIC_DIR", DefaultStaticDir),
		GinMode:       os.Getenv("GIN_MODE"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("WARNING: invalid REDIS_DB %q, using 0", raw)
		} else {
			cfg.RedisDB = db
		}
	}
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
