package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iirizarry/gai/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Interactively configure gai",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ensureConfigLoaded(); err != nil {
				return err
			}
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			if err := runInitWizard(os.Stdin, cmd.OutOrStdout(), cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved.")
			return nil
		},
	}

	// Seams for tests.
	saveConfigValues = func(apiKey, model string, temperature float32) error {
		config.SetConfigValue("api_key", apiKey)
		config.SetConfigValue("model", model)
		config.SetConfigValue("temperature", temperature)
		return config.SaveConfig()
	}
)

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInitWizard(in io.Reader, out io.Writer, current *config.Config) error {
	readLine := newTrimmedLineReader(in)
	fmt.Fprintln(out, "gai init - configure your OpenAI settings")

	apiKey, err := promptAPIKey(in, out, current, readLine)
	if err != nil {
		return err
	}
	model, err := promptModel(out, current, readLine)
	if err != nil {
		return err
	}
	temperature, err := promptTemperature(out, current, readLine)
	if err != nil {
		return err
	}

	if err := saveConfigValues(apiKey, model, temperature); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

func newTrimmedLineReader(in io.Reader) func() (string, error) {
	reader := bufio.NewReader(in)
	return func() (string, error) {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) && line == "" {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// readSecretLine reads without echo when the input is a terminal, falling
// back to a plain line read otherwise (pipes, tests).
func readSecretLine(in io.Reader, out io.Writer, readLine func() (string, error)) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return readLine()
	}
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

func promptAPIKey(in io.Reader, out io.Writer, cfg *config.Config, readLine func() (string, error)) (string, error) {
	for {
		if cfg.APIKey != "" {
			fmt.Fprint(out, "OpenAI API key (leave blank to keep current): ")
		} else {
			fmt.Fprint(out, "OpenAI API key (required): ")
		}

		line, err := readSecretLine(in, out, readLine)
		if err != nil {
			return "", err
		}
		if line == "" {
			if cfg.APIKey != "" {
				return cfg.APIKey, nil
			}
			fmt.Fprintln(out, "An API key is required.")
			continue
		}
		return line, nil
	}
}

func promptModel(out io.Writer, cfg *config.Config, readLine func() (string, error)) (string, error) {
	modelDefault := cfg.Model
	if modelDefault == "" {
		modelDefault = config.DefaultModel
	}
	fmt.Fprintf(out, "Model (default: %s): ", modelDefault)

	line, err := readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return modelDefault, nil
	}
	return line, nil
}

func promptTemperature(out io.Writer, cfg *config.Config, readLine func() (string, error)) (float32, error) {
	for {
		fmt.Fprintf(out, "Temperature 0.0-2.0 (default: %g): ", cfg.Temperature)

		line, err := readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return cfg.Temperature, nil
		}

		temp, err := strconv.ParseFloat(line, 32)
		if err != nil || temp < 0 || temp > 2 {
			fmt.Fprintln(out, "Please enter a number between 0.0 and 2.0.")
			continue
		}
		return float32(temp), nil
	}
}
