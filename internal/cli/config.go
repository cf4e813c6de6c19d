package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config holds the server connection details for the CasaHub CLI.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// Server is the base URL of the portal server, e.g. http://localhost:8210
	Server string `yaml:"server"`
	// JobKey authenticates the job and webhook endpoints
	JobKey string `yaml:"job_key"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file
// (e.g. ~/.config/casahub/config.yaml on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "casahub", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file. If no file is
// specified, the default config location is used.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if c.Server == "" {
		return errors.New("server is required")
	}
	c.Server = strings.TrimSuffix(c.Server, "/")
	if !strings.HasPrefix(c.Server, "http://") && !strings.HasPrefix(c.Server, "https://") {
		c.Server = "http://" + c.Server
	}

	config = &c
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *Config {
	return config
}

// SaveConfig writes the configuration to the given path, creating parent
// directories as needed.
func SaveConfig(c *Config, file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("unable to serialize config: %w", err)
	}
	if err := os.WriteFile(file, out, 0o600); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}
