package llm

import (
	"errors"
	"fmt"
)

var (
	ErrNoChoices    = errors.New("no choices in response")
	ErrEmptyMessage = errors.New("model returned an empty commit message")
)

// StatusError reports a non-success HTTP status from the API. Body carries
// the raw response text so callers see exactly what the server said.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed: %s", e.Body)
}

// APIError is the application-level error object the API embeds in an
// otherwise well-formed response body.
type APIError struct {
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAI API error: %s", e.Message)
}
