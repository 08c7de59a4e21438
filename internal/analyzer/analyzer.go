// Package analyzer runs the four analysis stages in fixed sequence and
// assembles the final business intelligence report.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/stratlens/stratlens/internal/config"
	"github.com/stratlens/stratlens/internal/executor"
	"github.com/stratlens/stratlens/internal/parser"
	"github.com/stratlens/stratlens/internal/sanitize"
)

const (
	maxQueryLength = 4000
	// Individual agents refuse queries shorter than this even when the
	// orchestration-level validation passed on the raw input.
	minAgentQueryLength = 5
)

type Analyzer struct {
	exec    *executor.Executor
	cfg     config.AnalysisConfig
	limiter *rate.Limiter
	now     func() time.Time
}

// New builds the orchestrator. The inter-stage delay paces remote dispatch
// at one call per cfg.StageDelay; a zero delay disables pacing.
func New(exec *executor.Executor, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{
		exec:    exec,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.StageDelay), 1),
		now:     time.Now,
	}
}

// Run executes the complete analysis and always returns a (report, status)
// pair: a validation report for unusable queries, a structured error report
// if anything panics mid-run, otherwise the rendered business report.
func (a *Analyzer) Run(ctx context.Context, query, targetsCSV string) (report, status string) {
	start := a.now()
	runID := uuid.NewString()

	defer func() {
		if cause := recover(); cause != nil {
			slog.Error("analysis run failed", "run_id", runID, "cause", cause)
			report, status = errorReport(query, cause, a.now().Sub(start))
		}
	}()

	if len(strings.TrimSpace(query)) < a.cfg.MinQueryLength {
		slog.Warn("query rejected by validation", "run_id", runID, "length", len(strings.TrimSpace(query)))
		return validationReport(a.cfg.MinQueryLength), "Input validation failed: Query insufficient"
	}

	query = sanitize.Clean(query, maxQueryLength)
	targets := parseTargets(targetsCSV, a.cfg.MaxTargets)
	rep := newReport(query, targets)

	slog.Info("starting market intelligence analysis", "run_id", runID, "targets", len(targets))
	a.pace(ctx)
	rep.MarketIntelligence = a.marketAgent(ctx, query, targets)
	rep.Completion[sectionMarket] = len(strings.TrimSpace(rep.MarketIntelligence)) > marketCompleteLen

	slog.Info("starting competitive intelligence analysis", "run_id", runID)
	a.pace(ctx)
	rep.CompetitiveLandscape = a.competitiveAgent(ctx, query, targets)
	rep.Completion[sectionCompetitive] = len(strings.TrimSpace(rep.CompetitiveLandscape)) > competitiveCompleteLen

	slog.Info("starting risk assessment", "run_id", runID)
	a.pace(ctx)
	riskContext := truncate(rep.MarketIntelligence, 500) + " " + truncate(rep.CompetitiveLandscape, 500)
	rep.RiskEvaluation = a.riskAgent(ctx, query, riskContext)
	rep.Completion[sectionRisk] = len(strings.TrimSpace(rep.RiskEvaluation)) > riskCompleteLen

	slog.Info("generating strategic recommendations and executive summary", "run_id", runID)
	a.pace(ctx)
	rep.StrategicActions, rep.ExecutiveBriefing = a.strategicAgent(ctx, query, rep)
	rep.Completion[sectionRecommendations] = len(rep.StrategicActions) >= minRecommendations
	rep.Completion[sectionExecutive] = len(strings.TrimSpace(rep.ExecutiveBriefing)) > executiveCompleteLen

	rep.Duration = a.now().Sub(start)
	rep.Quality = rep.Score()

	slog.Info("analysis delivered", "run_id", runID, "duration", rep.Duration, "quality", rep.Quality)
	return rep.Render(a.now()), rep.StatusLine()
}

func (a *Analyzer) marketAgent(ctx context.Context, query string, targets []string) string {
	if len(query) < minAgentQueryLength {
		return "Insufficient query detail for market intelligence analysis."
	}
	return a.exec.Execute(ctx, marketMessages(query, targets), a.cfg.MarketTokens, "market_intelligence")
}

func (a *Analyzer) competitiveAgent(ctx context.Context, query string, targets []string) string {
	if len(query) < minAgentQueryLength {
		return "Insufficient query detail for competitive intelligence analysis."
	}
	return a.exec.Execute(ctx, competitiveMessages(query, targets), a.cfg.CompetitiveTokens, "competitive_intelligence")
}

func (a *Analyzer) riskAgent(ctx context.Context, query, intelligenceContext string) string {
	if len(query) < minAgentQueryLength {
		return "Insufficient query detail for risk assessment."
	}
	return a.exec.Execute(ctx, riskMessages(query, intelligenceContext), a.cfg.RiskTokens, "risk_assessment")
}

// strategicAgent issues the two final dispatches back to back: numbered
// recommendations first, then the executive summary that references how
// many were produced.
func (a *Analyzer) strategicAgent(ctx context.Context, query string, rep *Report) ([]string, string) {
	if len(query) < minAgentQueryLength {
		return nil, "Insufficient query detail for strategic advisory."
	}

	synthesis := synthesize([]labeledSection{
		{"MARKET_INTELLIGENCE", rep.MarketIntelligence},
		{"COMPETITIVE_LANDSCAPE", rep.CompetitiveLandscape},
		{"RISK_EVALUATION", rep.RiskEvaluation},
	})

	recText := a.exec.Execute(ctx, recommendationMessages(query, synthesis), a.cfg.RecommendationTokens, "strategic_recommendations")
	actions := parser.Actions(recText)

	briefing := a.exec.Execute(ctx, summaryMessages(query, synthesis, len(actions)), a.cfg.SummaryTokens, "executive_summary")
	return actions, briefing
}

// pace blocks until the inter-stage rate limit admits the next dispatch.
func (a *Analyzer) pace(ctx context.Context) {
	if err := a.limiter.Wait(ctx); err != nil {
		slog.Debug("stage pacing interrupted", "error", err)
	}
}

func parseTargets(csv string, max int) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	raw := strings.Split(csv, ",")
	if len(raw) > max {
		raw = raw[:max]
	}
	var targets []string
	for _, t := range raw {
		t = sanitize.Clean(strings.TrimSpace(t), 100)
		if len(t) > 2 {
			targets = append(targets, t)
		}
	}
	return targets
}

func validationReport(minLength int) string {
	return fmt.Sprintf(`# Input Validation Error

**Issue:** Research query must be at least %d characters with specific business context.

**Valid Query Examples:**
- "Strategic analysis of enterprise software market"
- "Competitive intelligence for renewable energy sector"
- "Market opportunity assessment for fintech solutions"

Please provide a detailed, business-focused research question.`, minLength)
}

func errorReport(query string, cause any, elapsed time.Duration) (string, string) {
	detail := fmt.Sprintf("%v", cause)
	report := fmt.Sprintf(`# Business Intelligence Analysis Error

**Query:** %s
**Analysis Duration:** %.1f seconds
**Error Category:** %T
**Error Details:** %s
**Timestamp:** %s

## System Status Assessment
- Input Processing: Completed
- Stage Orchestration: Error encountered during execution
- API Connectivity: Under diagnostic review
- Content Generation: Interrupted by system error

## Business Continuity Actions
1. Verify query contains specific business intelligence requirements
2. Ensure analysis targets are properly formatted (comma-separated)
3. Reduce query complexity if addressing very broad market scope
4. Retry analysis after brief interval for system recovery
5. Contact technical support if errors persist beyond retry attempts`,
		query, elapsed.Seconds(), cause, truncate(detail, 400), time.Now().Format("2006-01-02 15:04:05"))

	return report, fmt.Sprintf("Analysis failed: %s...", truncate(detail, 80))
}
