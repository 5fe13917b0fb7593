// Package workflow orchestrates the staged-diff to commit-message pipeline.
package workflow

import "context"

// GitClient abstracts git operations for testability.
type GitClient interface {
	IsRepository() (bool, error)
	StagedDiff() (string, error)
	Commit(message string) error
}

// LLMClient abstracts commit-message generation for testability.
type LLMClient interface {
	GenerateCommitMessage(ctx context.Context, diff string) (string, error)
}
