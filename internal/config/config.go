// Package config loads and persists gai settings: API credentials, endpoint
// base, model selection, and sampling temperature.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultModel       = "gpt-4.1-nano"
	DefaultTemperature = 1.0
	DefaultConfigName  = "config"
	DefaultConfigDir   = "gai"
	EnvPrefix          = "GAI"

	// APIKeyEnv is the variable the OpenAI ecosystem uses; it is honored
	// alongside the prefixed GAI_API_KEY.
	APIKeyEnv = "OPENAI_API_KEY"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	APIKey      string  `mapstructure:"api_key"`
	APIBase     string  `mapstructure:"api_base"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// InitConfig wires defaults, environment bindings, and the config file into
// viper. A missing config file is created with restrictive permissions; an
// unreadable or invalid one is an error.
func InitConfig(cfgFile string) error {
	// A local .env supplies variables the process environment does not
	// already define.
	_ = godotenv.Load()

	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("temperature", DefaultTemperature)
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	_ = viper.BindEnv("api_key", EnvPrefix+"_API_KEY", APIKeyEnv)

	path := cfgFile
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return err
		}
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetConfigPermissions(0o600)

	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	if mkErr := os.MkdirAll(filepath.Dir(path), 0o700); mkErr != nil {
		return fmt.Errorf("failed to create configuration directory: %w", mkErr)
	}
	if writeErr := viper.WriteConfigAs(path); writeErr != nil {
		return fmt.Errorf("failed to write configuration file: %w", writeErr)
	}
	return nil
}

func defaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, DefaultConfigDir, DefaultConfigName+".yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", DefaultConfigDir, DefaultConfigName+".yaml"), nil
}

// GetConfig returns the currently resolved configuration.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// SetConfigValue stages a configuration change in memory.
func SetConfigValue(key string, value any) {
	viper.Set(key, value)
}

// SaveConfig writes the current configuration back to the config file.
func SaveConfig() error {
	return viper.WriteConfig()
}
