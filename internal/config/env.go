package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after the YAML file
const (
	EnvBasePath = "PROJECT_FORGE_BASE_PATH"
	EnvStatus   = "PROJECT_FORGE_STATUS"
	EnvLogLevel = "PROJECT_FORGE_LOG_LEVEL"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Variables already set are left alone and
// missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overrides config values from PROJECT_FORGE_* variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBasePath)); v != "" {
		c.BasePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStatus)); v != "" {
		c.Defaults.Status = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}
