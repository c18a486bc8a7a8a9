// Package env loads environment variables from .env files.
//
// Usage:
//
//	env.Load()                           // Load .env from current directory
//	env.Load(env.WithFile(".env.local")) // Load specific file
//	env.Load(env.WithOverride())         // Override existing env vars
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Options holds configuration for loading environment variables.
type Options struct {
	filename string
	override bool
}

// Option is a functional option for configuring the loader.
type Option func(*Options)

// WithFile specifies the filename to load (default: ".env").
func WithFile(filename string) Option {
	return func(o *Options) {
		o.filename = filename
	}
}

// WithOverride enables overriding existing environment variables.
func WithOverride() Option {
	return func(o *Options) {
		o.override = true
	}
}

// Load loads environment variables from a .env file. A missing file is not
// an error; by default existing variables are not overridden.
func Load(opts ...Option) error {
	options := &Options{filename: ".env"}
	for _, opt := range opts {
		opt(options)
	}

	file, err := os.Open(options.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("env: failed to open %q: %w", options.filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseLine(line)
		if err != nil {
			return fmt.Errorf("env: line %d: %w", lineNum, err)
		}

		if options.override || os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("env: failed to set %q: %w", key, err)
			}
		}
	}

	return scanner.Err()
}

// Get returns the value of an environment variable, or empty string if not set.
func Get(key string) string {
	return os.Getenv(key)
}

// GetDefault returns the value of an environment variable, or the default value if not set.
func GetDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRequired returns the value of an environment variable, or an error if not set.
func GetRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("env: required variable %q is not set", key)
	}
	return value, nil
}

// parseLine parses a single KEY=VALUE line from the env file
func parseLine(line string) (key, value string, err error) {
	line = strings.TrimPrefix(line, "export ")
	line = strings.TrimSpace(line)

	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", "", fmt.Errorf("invalid format, expected KEY=VALUE")
	}

	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])

	if key == "" {
		return "", "", fmt.Errorf("empty key")
	}

	return key, unquote(value), nil
}

// unquote removes surrounding quotes from a value
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
