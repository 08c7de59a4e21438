package llm

import "context"

// Message roles understood by the completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single completion attempt.
type Request struct {
	Model            string
	Messages         []Message
	MaxTokens        int64
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
}

// Provider is the remote completion collaborator. Complete returns the
// generated text of the first choice, which may be empty when the endpoint
// returns no usable content. Failures are classified by the adapter:
// *RateLimitError, *ModelUnavailableError and *APIError carry the failing
// model; anything else is an unclassified transport error.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// RateLimitError indicates the endpoint rejected the attempt for quota
// reasons and the same model may be retried after a pause.
type RateLimitError struct {
	Model string
	Err   error
}

func (e *RateLimitError) Error() string {
	return "rate limited on model " + e.Model + ": " + e.Err.Error()
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// ModelUnavailableError indicates the model identifier is no longer served;
// further attempts against it are pointless.
type ModelUnavailableError struct {
	Model string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return "model " + e.Model + " unavailable: " + e.Err.Error()
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// APIError covers any other failure reported by the endpoint itself.
type APIError struct {
	Model string
	Err   error
}

func (e *APIError) Error() string {
	return "api error on model " + e.Model + ": " + e.Err.Error()
}

func (e *APIError) Unwrap() error { return e.Err }
