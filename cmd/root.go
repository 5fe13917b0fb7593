package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iirizarry/gai/internal/config"
	"github.com/iirizarry/gai/internal/git"
	"github.com/iirizarry/gai/internal/llm"
	"github.com/iirizarry/gai/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	generate    bool
	doCommit    bool
	model       string
	temperature float32
	verbose     bool
	configErr   error

	rootCmd = &cobra.Command{
		Use:   "gai",
		Short: "gai - AI Powered Git Commit Messages",
		Long: `gai inspects the staged changes in your git working tree, sends them to
an LLM, and generates a conventional commit message you can review or
commit with directly.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !generate && !doCommit {
				printBanner(cmd)
				return nil
			}
			if err := ensureConfigLoaded(); err != nil {
				return err
			}
			return runPipeline(cmd)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCtx = context.Background()
)

// SetContext supplies the context commands run under; main wires its
// signal-aware context through here before Execute.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

// RootCmd exposes the root command for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is ~/.config/gai/config.yaml)")
	rootCmd.Flags().BoolVarP(&generate, "generate", "g", false,
		"Generate a commit message from staged changes")
	rootCmd.Flags().BoolVarP(&doCommit, "commit", "c", false,
		"Generate and immediately commit with the message")
	rootCmd.Flags().StringVarP(&model, "model", "m", config.DefaultModel,
		"Model to use for generation")
	rootCmd.Flags().Float32VarP(&temperature, "temperature", "t", config.DefaultTemperature,
		"Temperature for generation (0.0-2.0)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false,
		"Show git commands as they run")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func ensureConfigLoaded() error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}
	return nil
}

func printBanner(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🤖 gai - AI Powered Git Commit Messages")
	fmt.Fprintln(out, "Use --generate (-g) to create a commit message")
	fmt.Fprintln(out, "Use --commit (-c) to commit with the generated message")
	fmt.Fprintln(out, "\nRun 'gai --help' for more options")
}

// runPipeline resolves the effective settings (explicit flag > environment >
// config file > default), validates them, and runs the workflow.
func runPipeline(cmd *cobra.Command) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	effectiveModel := cfg.Model
	if cmd.Flags().Changed("model") || effectiveModel == "" {
		effectiveModel = model
	}
	effectiveTemp := cfg.Temperature
	if cmd.Flags().Changed("temperature") {
		effectiveTemp = temperature
	}
	if effectiveTemp < 0 || effectiveTemp > 2 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %g", effectiveTemp)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY not found. Set it in your environment or a .env file, or run 'gai init'")
	}

	gitClient := git.NewClient(git.Options{Verbose: verbose, Logger: cmd.ErrOrStderr()})
	llmClient := llm.NewClient(llm.Options{
		APIKey:      apiKey,
		BaseURL:     cfg.APIBase,
		Model:       effectiveModel,
		Temperature: effectiveTemp,
	})

	flow := workflow.NewFlow(gitClient, llmClient, workflow.Options{
		Commit:    doCommit,
		OutWriter: cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	})
	return flow.Run(cmd.Context())
}
