package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the console configuration
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url" env:"AAS_API_BASE_URL"`
		Timeout string `yaml:"timeout" env:"AAS_API_TIMEOUT"`
	} `yaml:"api"`

	Auth struct {
		TokenFile string `yaml:"token_file" env:"AAS_AUTH_TOKEN_FILE"`
	} `yaml:"auth"`

	CSV struct {
		DownloadDir string `yaml:"download_dir" env:"AAS_CSV_DOWNLOAD_DIR"`
	} `yaml:"csv"`

	Logging struct {
		Level  string `yaml:"level" env:"AAS_LOG_LEVEL"`
		Format string `yaml:"format" env:"AAS_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone are enough to run
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.API.BaseURL = "http://localhost:8080/api"
	config.API.Timeout = "30s"

	config.Auth.TokenFile = ".aasctl-token"

	config.CSV.DownloadDir = "."

	config.Logging.Level = "info"
	config.Logging.Format = "pretty"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid API timeout format: %w", err)
	}

	return nil
}

// RequestTimeout returns the parsed API request timeout
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
