// Package config provides shared configuration utilities: environment
// lookup and the YAML tuning file that drives the simulation constants.
package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// NewLogger builds the process logger. The level is read from LOG_LEVEL
// (debug, info, warn, error) and defaults to info.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		logger.Warn("unknown LOG_LEVEL, using info", "value", os.Getenv("LOG_LEVEL"))
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
