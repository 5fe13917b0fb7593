package cmd

import (
	"fmt"
	"strconv"

	"github.com/iirizarry/gai/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gai configuration",
		Long:  `View and change stored settings: API key, model, temperature, and API base URL.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}

	configSetAPIKeyCmd = &cobra.Command{
		Use:   "apikey <key>",
		Short: "Set the OpenAI API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveConfigKey("api_key", args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
			return nil
		},
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model <name>",
		Short: "Set the model used for generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveConfigKey("model", args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model set to %s\n", args[0])
			return nil
		},
	}

	configSetTemperatureCmd = &cobra.Command{
		Use:   "temperature <value>",
		Short: "Set the sampling temperature (0.0-2.0)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			temp, err := strconv.ParseFloat(args[0], 32)
			if err != nil || temp < 0 || temp > 2 {
				return fmt.Errorf("temperature must be a number between 0.0 and 2.0, got %q", args[0])
			}
			if err := saveConfigKey("temperature", float32(temp)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Temperature set to %g\n", temp)
			return nil
		},
	}

	configSetAPIBaseCmd = &cobra.Command{
		Use:   "apibase <url>",
		Short: "Set the API base URL (for proxies; empty uses the official endpoint)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveConfigKey("api_base", args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API base URL set to %s\n", args[0])
			return nil
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ensureConfigLoaded(); err != nil {
				return err
			}
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			view := struct {
				APIKey      string  `yaml:"api_key"`
				APIBase     string  `yaml:"api_base"`
				Model       string  `yaml:"model"`
				Temperature float32 `yaml:"temperature"`
			}{maskAPIKey(cfg.APIKey), cfg.APIBase, cfg.Model, cfg.Temperature}

			dump, err := yaml.Marshal(view)
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(dump))
			return nil
		},
	}
)

func init() {
	configSetCmd.AddCommand(configSetAPIKeyCmd)
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetTemperatureCmd)
	configSetCmd.AddCommand(configSetAPIBaseCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

func saveConfigKey(key string, value any) error {
	if err := ensureConfigLoaded(); err != nil {
		return err
	}
	config.SetConfigValue(key, value)
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// maskAPIKey keeps just enough of the key to recognize it.
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
