package cmd

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iirizarry/gai/internal/config"
)

type savedValues struct {
	apiKey      string
	model       string
	temperature float32
	called      bool
}

func stubSaveConfig(t *testing.T, err error) *savedValues {
	t.Helper()

	var got savedValues
	orig := saveConfigValues
	saveConfigValues = func(apiKey, model string, temperature float32) error {
		got = savedValues{apiKey: apiKey, model: model, temperature: temperature, called: true}
		return err
	}
	t.Cleanup(func() { saveConfigValues = orig })
	return &got
}

func runWizard(t *testing.T, input string, cfg *config.Config) (*savedValues, string, error) {
	t.Helper()

	saved := stubSaveConfig(t, nil)
	var out bytes.Buffer
	err := runInitWizard(strings.NewReader(input), &out, cfg)
	return saved, out.String(), err
}

func TestRunInitWizardFreshConfig(t *testing.T) {
	cfg := &config.Config{Temperature: 1}

	saved, out, err := runWizard(t, "sk-new\ngpt-4o\n0.5\n", cfg)
	require.NoError(t, err)

	assert.True(t, saved.called)
	assert.Equal(t, "sk-new", saved.apiKey)
	assert.Equal(t, "gpt-4o", saved.model)
	assert.Equal(t, float32(0.5), saved.temperature)
	assert.Contains(t, out, "OpenAI API key (required)")
}

func TestRunInitWizardKeepsCurrentValues(t *testing.T) {
	cfg := &config.Config{APIKey: "sk-old", Model: "gpt-4.1-nano", Temperature: 1}

	saved, out, err := runWizard(t, "\n\n\n", cfg)
	require.NoError(t, err)

	assert.Equal(t, "sk-old", saved.apiKey)
	assert.Equal(t, "gpt-4.1-nano", saved.model)
	assert.Equal(t, float32(1), saved.temperature)
	assert.Contains(t, out, "leave blank to keep current")
}

func TestRunInitWizardRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{Temperature: 1}

	saved, out, err := runWizard(t, "\nsk-second-try\n\n\n", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "An API key is required.")
	assert.Equal(t, "sk-second-try", saved.apiKey)
}

func TestRunInitWizardRepromptsOnBadTemperature(t *testing.T) {
	cfg := &config.Config{Temperature: 1}

	saved, out, err := runWizard(t, "sk-key\n\n9\nnope\n0.7\n", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Please enter a number between 0.0 and 2.0.")
	assert.Equal(t, float32(0.7), saved.temperature)
}

func TestRunInitWizardEOFBeforeRequiredKey(t *testing.T) {
	cfg := &config.Config{Temperature: 1}

	saved, _, err := runWizard(t, "", cfg)
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, saved.called)
}

func TestRunInitWizardSaveFailure(t *testing.T) {
	saved := stubSaveConfig(t, errors.New("disk full"))
	var out bytes.Buffer

	err := runInitWizard(strings.NewReader("sk-key\n\n\n"), &out, &config.Config{Temperature: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save configuration")
	assert.True(t, saved.called)
}

func TestReadSecretLineNonTTYFallsBack(t *testing.T) {
	in := strings.NewReader("sk-piped\n")
	readLine := newTrimmedLineReader(in)

	line, err := readSecretLine(in, io.Discard, readLine)
	require.NoError(t, err)
	assert.Equal(t, "sk-piped", line)
}

func TestNewTrimmedLineReader(t *testing.T) {
	readLine := newTrimmedLineReader(strings.NewReader("  first \nsecond"))

	line, err := readLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	// Final line without a trailing newline still comes through.
	line, err = readLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = readLine()
	assert.ErrorIs(t, err, io.EOF)
}
