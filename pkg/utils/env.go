package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv returns the environment variable named by key, or fallback when it is unset or empty.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integers; unparsable values yield fallback.
func GetenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

// GetenvBool is Getenv for booleans ("1", "true", "yes" are true).
func GetenvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// GetenvSeconds reads a number of seconds as a duration.
func GetenvSeconds(key string, fallback time.Duration) time.Duration {
	n := GetenvInt(key, -1)
	if n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
