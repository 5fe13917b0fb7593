package git

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"unicode/utf8"

	"github.com/iirizarry/gai/internal/gitcmd"
)

var (
	ErrNotRepository   = errors.New("not inside a git repository")
	ErrNoStagedChanges = errors.New("no staged changes found, use 'git add' to stage your changes")
)

// Options configures a Client.
type Options struct {
	Dir     string
	Verbose bool
	Logger  io.Writer
}

// Client runs the git operations the commit pipeline needs.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{runner: gitcmd.Runner{
		Verbose: opts.Verbose,
		Dir:     opts.Dir,
		Logger:  opts.Logger,
	}}
}

// IsRepository reports whether the working directory is inside a git work
// tree. A non-zero exit from git means it is not; failing to launch git at
// all is an error.
func (c *Client) IsRepository() (bool, error) {
	_, err := c.runner.Run("rev-parse", "--is-inside-work-tree")
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("failed to execute git (is git installed?): %w", err)
}

// StagedDiff returns the staged diff exactly as git prints it.
func (c *Client) StagedDiff() (string, error) {
	res, err := c.runner.Run("diff", "--staged")
	if err != nil {
		return "", wrapGitError("failed to get staged diff", res, err)
	}
	if !utf8.Valid(res.Stdout) {
		return "", errors.New("git diff output is not valid UTF-8")
	}
	if len(res.Stdout) == 0 {
		return "", ErrNoStagedChanges
	}
	return string(res.Stdout), nil
}

// Commit records the currently staged changes with the given message.
func (c *Client) Commit(message string) error {
	res, err := c.runner.Run("commit", "-m", message)
	if err != nil {
		return wrapGitError("commit failed", res, err)
	}
	return nil
}

// wrapGitError prefers git's stderr text over the raw exec error.
func wrapGitError(action string, res gitcmd.Result, err error) error {
	if msg := res.StderrString(true); msg != "" {
		return fmt.Errorf("%s: %s: %w", action, msg, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
