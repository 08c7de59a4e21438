package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrCredentials marks an absent or implausibly short API credential. The
// server treats this as a degraded configuration state, not a crash.
var ErrCredentials = errors.New("GROQ_API_KEY missing or too short")

const minAPIKeyLength = 15

type Config struct {
	Server   ServerConfig
	Groq     GroqConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"300s"`
}

type GroqConfig struct {
	APIKey         string        `envconfig:"GROQ_API_KEY"`
	Endpoint       string        `envconfig:"GROQ_ENDPOINT" default:"https://api.groq.com/openai/v1"`
	PrimaryModel   string        `envconfig:"GROQ_PRIMARY_MODEL" default:"llama-3.1-70b-versatile"`
	FallbackModels []string      `envconfig:"GROQ_FALLBACK_MODELS" default:"mixtral-8x7b-32768,llama-3.1-8b-instant"`
	RequestTimeout time.Duration `envconfig:"GROQ_REQUEST_TIMEOUT" default:"60s"`
}

// AnalysisConfig carries the orchestration tunables. The retry and pacing
// durations are configuration rather than embedded constants so tests can
// run them at zero.
type AnalysisConfig struct {
	MinQueryLength  int           `envconfig:"ANALYSIS_MIN_QUERY_LENGTH" default:"10"`
	MaxTargets      int           `envconfig:"ANALYSIS_MAX_TARGETS" default:"8"`
	StageDelay      time.Duration `envconfig:"ANALYSIS_STAGE_DELAY" default:"3s"`
	CacheMaxEntries int           `envconfig:"ANALYSIS_CACHE_MAX_ENTRIES" default:"256"`

	RateLimitBackoff      time.Duration `envconfig:"ANALYSIS_RATE_LIMIT_BACKOFF" default:"15s"`
	RateLimitModelBackoff time.Duration `envconfig:"ANALYSIS_RATE_LIMIT_MODEL_BACKOFF" default:"10s"`
	APIErrorBackoff       time.Duration `envconfig:"ANALYSIS_API_ERROR_BACKOFF" default:"5s"`
	UnknownErrorBackoff   time.Duration `envconfig:"ANALYSIS_UNKNOWN_ERROR_BACKOFF" default:"3s"`

	MarketTokens         int64 `envconfig:"ANALYSIS_MARKET_TOKENS" default:"1000"`
	CompetitiveTokens    int64 `envconfig:"ANALYSIS_COMPETITIVE_TOKENS" default:"1000"`
	RiskTokens           int64 `envconfig:"ANALYSIS_RISK_TOKENS" default:"800"`
	RecommendationTokens int64 `envconfig:"ANALYSIS_RECOMMENDATION_TOKENS" default:"700"`
	SummaryTokens        int64 `envconfig:"ANALYSIS_SUMMARY_TOKENS" default:"600"`
}

// Models returns the ordered model list: primary first, then fallbacks.
func (g GroqConfig) Models() []string {
	return append([]string{g.PrimaryModel}, g.FallbackModels...)
}

// ValidateCredentials reports whether the configured API key is usable.
func (g GroqConfig) ValidateCredentials() error {
	if len(g.APIKey) < minAPIKeyLength {
		return ErrCredentials
	}
	return nil
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
