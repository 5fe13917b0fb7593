package llm

// Roles recognized by the chat-completions API.
const (
	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the wire form of a chat-completions call. Temperature has
// no omitempty: zero is a valid sampling value and must reach the API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

// chatResponse is the subset of the response body the pipeline consumes.
// A nil Choices slice means the field was absent (or null) in the body,
// which callers treat as a malformed response.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *APIError    `json:"error"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
