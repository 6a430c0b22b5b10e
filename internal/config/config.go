package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DatabasePath   string
	Port           string
	LogLevel       string
	SeedSampleData bool
}

func Load() (Config, error) {
	seed, err := boolEnvOrDefault("SEED_SAMPLE_DATA", true)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		DatabasePath:   envOrDefault("DATABASE_PATH", "./data/student-focus.db"),
		Port:           envOrDefault("PORT", "8080"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		SeedSampleData: seed,
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func boolEnvOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return parsed, nil
}
