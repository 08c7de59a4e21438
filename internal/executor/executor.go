// Package executor wraps the remote completion call with model fallback,
// bounded retries and a content-keyed response cache.
package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stratlens/stratlens/internal/cache"
	"github.com/stratlens/stratlens/internal/llm"
)

const (
	attemptsPerModel = 3

	// Responses at or below this length are treated as unusable and retried.
	minAcceptableLength = 150

	temperature      = 0.1
	topP             = 0.9
	frequencyPenalty = 0.15
)

// accuracyClause is appended to the system message before dispatch. It is
// applied before fingerprinting so cache hits reflect what was actually sent.
const accuracyClause = " Focus on factual, evidence-based analysis. Clearly distinguish between verified information and reasonable estimates."

// Backoff holds the per-failure-class sleep units. Zero values disable the
// corresponding waits, which tests rely on.
type Backoff struct {
	RateLimitUnit      time.Duration
	RateLimitModelUnit time.Duration
	APIErrorUnit       time.Duration
	UnknownUnit        time.Duration
}

type Executor struct {
	provider llm.Provider
	cache    *cache.Cache
	models   []string
	backoff  Backoff
	sleep    func(context.Context, time.Duration)
}

type Option func(*Executor)

// WithSleep replaces the blocking wait, letting tests record backoff
// durations instead of serving them.
func WithSleep(fn func(context.Context, time.Duration)) Option {
	return func(e *Executor) { e.sleep = fn }
}

// New builds an executor over an ordered model list: one primary model
// followed by its fallbacks.
func New(provider llm.Provider, responses *cache.Cache, models []string, backoff Backoff, opts ...Option) *Executor {
	e := &Executor{
		provider: provider,
		cache:    responses,
		models:   models,
		backoff:  backoff,
		sleep:    contextSleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute attempts a completion across the configured models and never
// fails: the result is either accepted remote content or a deterministic
// fallback for the given context label. Only genuine content is cached.
func (e *Executor) Execute(ctx context.Context, messages []llm.Message, maxTokens int64, label string) string {
	if len(messages) == 0 {
		return fmt.Sprintf("No input provided for %s analysis.", label)
	}

	enhanced := make([]llm.Message, len(messages))
	copy(enhanced, messages)
	enhanced[0].Content += accuracyClause

	payload, err := json.Marshal(enhanced)
	if err != nil {
		// Messages are plain strings; marshaling cannot realistically fail.
		return fallbackText(label)
	}
	key := cache.Fingerprint(payload)
	if text, ok := e.cache.Get(key); ok {
		slog.Info("cache hit", "context", label)
		return text
	}

modelLoop:
	for modelIdx, model := range e.models {
		for attempt := 0; attempt < attemptsPerModel; attempt++ {
			slog.Info("attempting completion", "context", label, "model", model, "attempt", attempt+1)

			text, err := e.provider.Complete(ctx, llm.Request{
				Model:            model,
				Messages:         enhanced,
				MaxTokens:        maxTokens,
				Temperature:      temperature,
				TopP:             topP,
				FrequencyPenalty: frequencyPenalty,
			})
			if err == nil {
				content := strings.TrimSpace(text)
				if len(content) > minAcceptableLength {
					e.cache.Put(key, content)
					slog.Info("completion accepted", "context", label, "model", model, "length", len(content))
					return content
				}
				slog.Debug("completion below quality threshold", "context", label, "model", model, "length", len(content))
				continue
			}

			var (
				rateLimited *llm.RateLimitError
				unavailable *llm.ModelUnavailableError
				apiErr      *llm.APIError
			)
			switch {
			case errors.As(err, &rateLimited):
				wait := time.Duration(attempt+1)*e.backoff.RateLimitUnit + time.Duration(modelIdx)*e.backoff.RateLimitModelUnit
				slog.Warn("rate limited", "context", label, "model", model, "wait", wait)
				e.sleep(ctx, wait)
			case errors.As(err, &unavailable):
				slog.Warn("model unavailable, advancing to next", "context", label, "model", model)
				continue modelLoop
			case errors.As(err, &apiErr):
				slog.Warn("api error", "context", label, "model", model, "error", err)
				e.sleep(ctx, time.Duration(attempt+1)*e.backoff.APIErrorUnit)
			default:
				slog.Error("unexpected completion error", "context", label, "model", model, "error", err)
				e.sleep(ctx, time.Duration(attempt+1)*e.backoff.UnknownUnit)
			}
		}
	}

	return fallbackText(label)
}

// fallbackText is the terminal answer after every model and attempt is
// exhausted. It is intentionally not cached.
func fallbackText(label string) string {
	return fmt.Sprintf(`%s ANALYSIS - LIMITED AVAILABILITY

Due to high system demand, detailed %s analysis is temporarily constrained.
Key insights based on general market knowledge:

- Market conditions show typical enterprise software adoption patterns
- Competitive dynamics reflect standard technology sector characteristics
- Risk factors align with common enterprise technology concerns
- Strategic considerations follow established business frameworks

For complete analysis, please retry in a few minutes when system capacity improves.`,
		strings.ToUpper(label), label)
}

func contextSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
