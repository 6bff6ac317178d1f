// Package env reads typed settings from the environment. A missing or
// unparseable value yields the fallback.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func GetString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		invalid(key, fallback)
		return fallback
	}
	return parsed
}

func GetBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		invalid(key, fallback)
		return fallback
	}
	return parsed
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || parsed <= 0 {
		invalid(key, fallback)
		return fallback
	}
	return parsed
}

func invalid(key string, fallback any) {
	fmt.Fprintf(os.Stderr, "Invalid %s, defaulting to %v\n", key, fallback)
}
