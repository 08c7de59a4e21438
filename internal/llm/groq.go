package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/stratlens/stratlens/internal/config"
)

// Groq is a Provider backed by the Groq completion endpoint, which speaks
// the OpenAI chat-completions wire format.
type Groq struct {
	client *openai.Client
}

// NewGroq validates the configured credential and builds the client. SDK
// retries are disabled: the executor owns the retry policy.
func NewGroq(cfg *config.GroqConfig) (*Groq, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.Endpoint),
		option.WithRequestTimeout(cfg.RequestTimeout),
		option.WithMaxRetries(0),
	)

	return &Groq{client: client}, nil
}

func (g *Groq) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := g.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model:            openai.F(req.Model),
			Messages:         openai.F(messages),
			MaxTokens:        openai.F(req.MaxTokens),
			Temperature:      openai.F(req.Temperature),
			TopP:             openai.F(req.TopP),
			FrequencyPenalty: openai.F(req.FrequencyPenalty),
		},
	)
	if err != nil {
		return "", classify(req.Model, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps endpoint failures onto the typed error variants so that
// call sites never inspect error text themselves.
func classify(model string, err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return err
	}

	msg := strings.ToLower(apierr.Message)
	switch {
	case apierr.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Model: model, Err: err}
	case apierr.StatusCode == http.StatusNotFound,
		strings.Contains(msg, "decommissioned"),
		strings.Contains(msg, "not found"):
		return &ModelUnavailableError{Model: model, Err: err}
	default:
		return &APIError{Model: model, Err: err}
	}
}
