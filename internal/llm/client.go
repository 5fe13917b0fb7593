package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Error bodies are short; reading is capped so a misbehaving server cannot
// balloon an error message.
const maxErrorBodyBytes = 4096

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
}

// Client talks to the OpenAI chat-completions endpoint. It performs a single
// blocking round trip per call: no retries, no streaming, and no timeout
// beyond what the HTTP client itself enforces.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float32
	httpClient  *http.Client
}

func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:      opts.APIKey,
		baseURL:     opts.BaseURL,
		model:       opts.Model,
		temperature: opts.Temperature,
		httpClient:  opts.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// GenerateCommitMessage sends the staged diff to the API and returns the
// normalized commit message from the first choice.
func (c *Client) GenerateCommitMessage(ctx context.Context, diff string) (string, error) {
	resp, err := c.complete(ctx, newCommitRequest(c.model, c.temperature, diff))
	if err != nil {
		return "", err
	}
	return commitMessageFromResponse(resp)
}

// complete performs the HTTP round trip and decodes the body. A non-success
// status becomes a StatusError carrying the raw body; a body that cannot be
// decoded, or that lacks the choices field, is a malformed response.
func (c *Client) complete(ctx context.Context, req chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request to OpenAI API: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(httpResp)
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("parse OpenAI API response: %w", err)
	}
	if resp.Choices == nil {
		return nil, fmt.Errorf("parse OpenAI API response: missing choices field")
	}
	return &resp, nil
}

// commitMessageFromResponse applies the remaining validation gate: an
// embedded error object wins over any choices, then the choice list must be
// non-empty, then the normalized message must be non-empty.
func commitMessageFromResponse(resp *chatResponse) (string, error) {
	if resp.Error != nil {
		return "", resp.Error
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	message := NormalizeMessage(resp.Choices[0].Message.Content)
	if message == "" {
		return "", ErrEmptyMessage
	}
	return message, nil
}

// NormalizeMessage trims surrounding whitespace, then trims double-quote
// characters from both ends independently. An unmatched quote on a single
// end is removed too; this is deliberately not a balanced-pair rule.
func NormalizeMessage(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

func (c *Client) chatURL() string {
	base := strings.TrimSuffix(c.baseURL, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base + "/chat/completions"
}

func newStatusError(resp *http.Response) *StatusError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return &StatusError{StatusCode: resp.StatusCode, Body: "unknown error"}
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
