package config

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool parses the variable named by key as a bool. An unset or empty
// variable yields fallback.
func GetEnvBool(key string, fallback bool) (bool, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// Environment variables read by FromEnv.
const (
	EnvConfigPath = "GOALBALL_CONFIG"
	EnvLogFPS     = "GOALBALL_LOG_FPS"
	EnvLogFile    = "GOALBALL_LOG"
)

// FromEnv loads the file named by GOALBALL_CONFIG (defaults if unset) and
// applies GOALBALL_LOG_FPS on top.
func FromEnv() (*Config, error) {
	cfg, err := Load(GetEnv(EnvConfigPath, ""))
	if err != nil {
		return nil, err
	}
	logFPS, err := GetEnvBool(EnvLogFPS, cfg.Debug.LogFPS)
	if err != nil {
		return nil, err
	}
	cfg.Debug.LogFPS = logFPS
	return cfg, nil
}
