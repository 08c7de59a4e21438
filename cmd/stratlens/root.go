package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/stratlens/stratlens/internal/analyzer"
	"github.com/stratlens/stratlens/internal/cache"
	"github.com/stratlens/stratlens/internal/config"
	"github.com/stratlens/stratlens/internal/executor"
	"github.com/stratlens/stratlens/internal/llm"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stratlens",
		Short:         "Strategic business intelligence analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newAnalyzeCommand())
	return cmd
}

// buildAnalyzer assembles the provider, cache, executor and orchestrator
// from configuration. A credential problem is reported via config.ErrCredentials
// so callers can choose a degraded mode over a crash.
func buildAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	provider, err := llm.NewGroq(&cfg.Groq)
	if err != nil {
		return nil, err
	}

	responses := cache.New(cfg.Analysis.CacheMaxEntries)
	exec := executor.New(provider, responses, cfg.Groq.Models(), executor.Backoff{
		RateLimitUnit:      cfg.Analysis.RateLimitBackoff,
		RateLimitModelUnit: cfg.Analysis.RateLimitModelBackoff,
		APIErrorUnit:       cfg.Analysis.APIErrorBackoff,
		UnknownUnit:        cfg.Analysis.UnknownErrorBackoff,
	})

	return analyzer.New(exec, cfg.Analysis), nil
}

func isCredentialError(err error) bool {
	return errors.Is(err, config.ErrCredentials)
}
