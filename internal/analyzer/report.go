package analyzer

import (
	"fmt"
	"strings"
	"time"
)

// Section keys tracked in the completion map.
const (
	sectionMarket          = "market"
	sectionCompetitive     = "competitive"
	sectionRisk            = "risk"
	sectionRecommendations = "recommendations"
	sectionExecutive       = "executive"
)

// Minimum content-length bars per section.
const (
	marketCompleteLen      = 300
	competitiveCompleteLen = 300
	riskCompleteLen        = 200
	executiveCompleteLen   = 200
	minRecommendations     = 4
)

// Report is the orchestration result, owned by a single run and mutated
// incrementally as each stage completes.
type Report struct {
	Query                string
	Targets              []string
	MarketIntelligence   string
	CompetitiveLandscape string
	RiskEvaluation       string
	StrategicActions     []string
	ExecutiveBriefing    string
	Completion           map[string]bool
	Quality              float64
	Duration             time.Duration
}

func newReport(query string, targets []string) *Report {
	return &Report{
		Query:      query,
		Targets:    targets,
		Completion: make(map[string]bool),
	}
}

// completedSections returns how many sections met their bar and the total
// tracked.
func (r *Report) completedSections() (int, int) {
	done := 0
	for _, ok := range r.Completion {
		if ok {
			done++
		}
	}
	return done, len(r.Completion)
}

// Score computes the composite quality score in [0,1]: 60% section
// completeness, 25% content quality (six or more recommendations, briefing
// beyond 300 characters), 15% processing performance.
func (r *Report) Score() float64 {
	score := 0.0

	if done, total := r.completedSections(); total > 0 {
		score += float64(done) / float64(total) * 0.6
	}

	content := 0.0
	if len(r.StrategicActions) >= 6 {
		content += 0.5
	}
	if len(strings.TrimSpace(r.ExecutiveBriefing)) > 300 {
		content += 0.5
	}
	score += content * 0.25

	switch {
	case r.Duration > 0 && r.Duration <= 60*time.Second:
		score += 0.15
	case r.Duration > 0 && r.Duration <= 120*time.Second:
		score += 0.10
	}

	return min(score, 1.0)
}

// Render produces the final structured report document.
func (r *Report) Render(now time.Time) string {
	done, total := r.completedSections()
	focus := "Comprehensive Market Coverage"
	if len(r.Targets) > 0 {
		focus = strings.Join(r.Targets, ", ")
	}

	var b strings.Builder
	b.WriteString("# Strategic Business Intelligence Report\n")
	fmt.Fprintf(&b, "**Analysis Date:** %s\n", now.UTC().Format("January 2, 2006 at 15:04 UTC"))
	fmt.Fprintf(&b, "**Research Scope:** %s\n", r.Query)
	fmt.Fprintf(&b, "**Analysis Focus:** %s\n", focus)
	fmt.Fprintf(&b, "**Processing Time:** %.1f seconds | **Quality Score:** %.0f%%\n", r.Duration.Seconds(), r.Quality*100)
	fmt.Fprintf(&b, "**Section Completion:** %d/%d sections fully delivered\n\n---\n\n", done, total)

	if len(strings.TrimSpace(r.ExecutiveBriefing)) > 100 {
		b.WriteString("## Executive Summary\n")
		b.WriteString(r.ExecutiveBriefing)
		b.WriteString("\n\n---\n\n")
	}

	if len(r.StrategicActions) > 0 {
		b.WriteString("## Strategic Recommendations\n\n")
		for i, action := range r.StrategicActions {
			fmt.Fprintf(&b, "**%d.** %s\n", i+1, action)
		}
		b.WriteString("\n---\n\n")
	}

	b.WriteString("## Market Intelligence\n")
	b.WriteString(orPlaceholder(r.MarketIntelligence, "Market intelligence analysis not available due to system constraints."))
	b.WriteString("\n\n## Competitive Landscape\n")
	b.WriteString(orPlaceholder(r.CompetitiveLandscape, "Competitive analysis not available due to system constraints."))
	b.WriteString("\n\n## Strategic Risk Assessment\n")
	b.WriteString(orPlaceholder(r.RiskEvaluation, "Risk assessment not available due to system constraints."))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## Analysis Quality Metrics\n")
	fmt.Fprintf(&b, "- **Content Completeness:** %d/%d sections delivered\n", done, total)
	fmt.Fprintf(&b, "- **Strategic Recommendations:** %d actionable strategies\n", len(r.StrategicActions))
	fmt.Fprintf(&b, "- **Processing Efficiency:** %.1f seconds end-to-end\n", r.Duration.Seconds())
	fmt.Fprintf(&b, "- **Analysis Quality Score:** %.1f%%\n", r.Quality*100)
	fmt.Fprintf(&b, "- **Business Readiness:** %s\n\n", readiness(r.Quality))
	b.WriteString("*Generated by the stratlens multi-stage intelligence pipeline*")

	return b.String()
}

// StatusLine is the one-line performance summary returned beside the report.
func (r *Report) StatusLine() string {
	done, total := r.completedSections()
	return fmt.Sprintf("Complete analysis delivered in %.1fs | Quality Score: %.0f%% | Sections Completed: %d/%d",
		r.Duration.Seconds(), r.Quality*100, done, total)
}

func readiness(quality float64) string {
	switch {
	case quality > 0.8:
		return "Executive-Ready"
	case quality > 0.6:
		return "Business-Standard"
	default:
		return "Draft-Quality"
	}
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
