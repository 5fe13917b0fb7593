package workflow

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/iirizarry/gai/internal/git"
	"github.com/iirizarry/gai/internal/ui"
)

// Options controls a single pipeline run.
type Options struct {
	Commit    bool
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Flow wires the git and LLM clients into the generate-or-commit pipeline.
type Flow struct {
	git  GitClient
	llm  LLMClient
	opts Options
}

func NewFlow(gitClient GitClient, llmClient LLMClient, opts Options) *Flow {
	if opts.OutWriter == nil {
		opts.OutWriter = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	return &Flow{git: gitClient, llm: llmClient, opts: opts}
}

// Run retrieves the staged diff, generates a commit message from it, and
// either commits with the message or prints it with a ready-to-use command.
// The first failing stage aborts the run; the commit step is only reached
// once a validated message exists.
func (f *Flow) Run(ctx context.Context) error {
	diff, err := f.stagedDiff()
	if err != nil {
		return err
	}

	message, err := f.generateMessage(ctx, diff)
	if err != nil {
		return err
	}

	if f.opts.Commit {
		return f.commit(message)
	}

	f.printMessage(message)
	return nil
}

func (f *Flow) stagedDiff() (string, error) {
	ok, err := f.git.IsRepository()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", git.ErrNotRepository
	}
	return f.git.StagedDiff()
}

func (f *Flow) generateMessage(ctx context.Context, diff string) (string, error) {
	sp := ui.NewSpinner("Generating commit message...")
	sp.Start()
	message, err := f.llm.GenerateCommitMessage(ctx, diff)
	sp.Stop()

	if err != nil {
		return "", fmt.Errorf("failed to generate commit message: %w", err)
	}
	return message, nil
}

func (f *Flow) commit(message string) error {
	if err := f.git.Commit(message); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	fmt.Fprintf(f.opts.OutWriter, "✅ Committed with message: \"%s\"\n", message)
	return nil
}

func (f *Flow) printMessage(message string) {
	fmt.Fprintln(f.opts.OutWriter, "📝 Generated commit message:")
	fmt.Fprintln(f.opts.OutWriter, message)
	fmt.Fprintln(f.opts.OutWriter, "\nTo use this message:")
	fmt.Fprintf(f.opts.OutWriter, "git commit -m \"%s\"\n", message)
}
