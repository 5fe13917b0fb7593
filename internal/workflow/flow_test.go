package workflow

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iirizarry/gai/internal/git"
	"github.com/iirizarry/gai/internal/llm"
)

type fakeGit struct {
	isRepo    bool
	isRepoErr error
	diff      string
	diffErr   error
	commitErr error
	committed []string
}

func (f *fakeGit) IsRepository() (bool, error) { return f.isRepo, f.isRepoErr }

func (f *fakeGit) StagedDiff() (string, error) { return f.diff, f.diffErr }

func (f *fakeGit) Commit(message string) error {
	f.committed = append(f.committed, message)
	return f.commitErr
}

type fakeLLM struct {
	message string
	err     error
	diffs   []string
}

func (f *fakeLLM) GenerateCommitMessage(_ context.Context, diff string) (string, error) {
	f.diffs = append(f.diffs, diff)
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

func runFlow(t *testing.T, g GitClient, l LLMClient, commit bool) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	flow := NewFlow(g, l, Options{Commit: commit, OutWriter: &out, ErrWriter: &errOut})
	err := flow.Run(context.Background())
	return out.String(), err
}

func TestRunGenerateMode(t *testing.T) {
	g := &fakeGit{isRepo: true, diff: "+add foo()\n"}
	l := &fakeLLM{message: "feat: add foo function"}

	out, err := runFlow(t, g, l, false)
	require.NoError(t, err)

	assert.Equal(t, "📝 Generated commit message:\n"+
		"feat: add foo function\n"+
		"\nTo use this message:\n"+
		"git commit -m \"feat: add foo function\"\n", out)
	assert.Equal(t, []string{"+add foo()\n"}, l.diffs, "diff must reach the generator verbatim")
	assert.Empty(t, g.committed)
}

func TestRunCommitMode(t *testing.T) {
	g := &fakeGit{isRepo: true, diff: "+add foo()\n"}
	l := &fakeLLM{message: "feat: add foo function"}

	out, err := runFlow(t, g, l, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"feat: add foo function"}, g.committed)
	assert.Equal(t, "✅ Committed with message: \"feat: add foo function\"\n", out)
}

func TestRunNotARepository(t *testing.T) {
	g := &fakeGit{isRepo: false}
	l := &fakeLLM{message: "feat: never generated"}

	_, err := runFlow(t, g, l, false)
	assert.ErrorIs(t, err, git.ErrNotRepository)
	assert.Empty(t, l.diffs, "no generation without a repository")
}

func TestRunRepositoryCheckFailure(t *testing.T) {
	g := &fakeGit{isRepoErr: errors.New("failed to execute git (is git installed?): exec: \"git\": executable file not found")}
	l := &fakeLLM{}

	_, err := runFlow(t, g, l, false)
	assert.ErrorContains(t, err, "is git installed")
	assert.Empty(t, l.diffs)
}

func TestRunNoStagedChanges(t *testing.T) {
	g := &fakeGit{isRepo: true, diffErr: git.ErrNoStagedChanges}
	l := &fakeLLM{}

	_, err := runFlow(t, g, l, true)
	assert.ErrorIs(t, err, git.ErrNoStagedChanges)
	assert.Empty(t, l.diffs, "empty diff must fail before any network call")
	assert.Empty(t, g.committed)
}

func TestRunGenerationFailureSkipsCommit(t *testing.T) {
	g := &fakeGit{isRepo: true, diff: "+x\n"}
	l := &fakeLLM{err: &llm.APIError{Message: "quota exceeded"}}

	_, err := runFlow(t, g, l, true)
	assert.ErrorContains(t, err, "failed to generate commit message")
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Empty(t, g.committed, "no commit after a failed generation")
}

func TestRunCommitFailure(t *testing.T) {
	g := &fakeGit{isRepo: true, diff: "+x\n", commitErr: errors.New("commit failed: hook rejected")}
	l := &fakeLLM{message: "feat: doomed"}

	out, err := runFlow(t, g, l, true)
	assert.ErrorContains(t, err, "failed to commit changes")
	assert.NotContains(t, out, "Committed with message")
}

// End-to-end against a real llm.Client so normalization and the HTTP layer
// are exercised together with the flow.
func TestRunEndToEndGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"\"feat: add foo function\""}}]}`))
	}))
	t.Cleanup(srv.Close)

	g := &fakeGit{isRepo: true, diff: "+add foo()\n"}
	client := llm.NewClient(llm.Options{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4.1-nano", Temperature: 1})

	out, err := runFlow(t, g, client, false)
	require.NoError(t, err)
	assert.Contains(t, out, "\nfeat: add foo function\n")
	assert.Contains(t, out, "git commit -m \"feat: add foo function\"")
}

func TestRunEndToEndAPIFailureNeverCommits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	t.Cleanup(srv.Close)

	g := &fakeGit{isRepo: true, diff: "+add foo()\n"}
	client := llm.NewClient(llm.Options{APIKey: "bad-key", BaseURL: srv.URL, Model: "gpt-4.1-nano", Temperature: 1})

	_, err := runFlow(t, g, client, true)
	assert.ErrorContains(t, err, "invalid api key")
	assert.Empty(t, g.committed, "commit mode must not commit after an API failure")
}
