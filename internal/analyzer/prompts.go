package analyzer

import (
	"fmt"
	"strings"

	"github.com/stratlens/stratlens/internal/llm"
	"github.com/stratlens/stratlens/internal/sanitize"
)

const marketSystemPrompt = `You are a Senior Market Research Analyst providing strategic business intelligence.
Deliver comprehensive, structured analysis based on realistic market conditions and established business principles.
Always complete your analysis within the allocated response space.`

const competitiveSystemPrompt = `You are a Competitive Intelligence Specialist providing strategic competitive analysis.
Focus on observable market dynamics and logical competitive assessment.
Complete all analysis sections within the response constraints.`

const riskSystemPrompt = `You are a Strategic Risk Analyst providing quantified risk evaluation.
Use realistic risk scoring based on actual market conditions and business fundamentals.
Complete all risk categories within the response allocation.`

const recommendationSystemPrompt = `You are a Senior Strategic Advisor providing executive-level recommendations.
Generate exactly 6-8 specific, implementable strategic actions based on the intelligence provided.
Each recommendation must be concrete and actionable.`

const summarySystemPrompt = `You are an Executive Business Consultant creating strategic briefings for senior leadership.
Create a concise, confident executive summary suitable for C-suite decision-making.`

func marketMessages(query string, targets []string) []llm.Message {
	focus := "across the broader market landscape"
	if len(targets) > 0 {
		focus = "with specific attention to " + strings.Join(head(targets, 5), ", ")
	}

	user := fmt.Sprintf(`Provide comprehensive market intelligence for: %s %s

Deliver analysis in these structured sections:

## MARKET SCALE AND TRAJECTORY
Current market size estimates, growth projections, and key expansion drivers

## DOMINANT INDUSTRY PATTERNS
Three most significant trends reshaping the market and technology adoption cycles

## STRATEGIC MARKET OPPORTUNITIES
High-potential growth areas and emerging market segments for strategic focus

## MARKET STRUCTURE ANALYSIS
Competitive intensity, market concentration, and barriers to market entry

## FORWARD-LOOKING ASSESSMENT
12-18 month outlook with critical success factors and performance drivers

Ensure each section provides specific, actionable intelligence suitable for strategic decision-making.`, query, focus)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: marketSystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

func competitiveMessages(query string, targets []string) []llm.Message {
	if len(targets) == 0 {
		targets = []string{"key market leaders"}
	}
	entities := strings.Join(head(targets, 6), ", ")

	user := fmt.Sprintf(`Analyze competitive dynamics for: %s

**TARGET ENTITIES:** %s

Provide structured competitive intelligence:

## COMPETITIVE MARKET POSITIONS
Current market standing, estimated share insights, and competitive hierarchy

## STRATEGIC COMPETITIVE ADVANTAGES
Core differentiators, unique value propositions, and sustainable competitive assets

## COMPETITIVE VULNERABILITIES
Strategic weaknesses, market gaps, and potential disruption points

## RECENT COMPETITIVE ACTIVITIES
Notable strategic moves, partnerships, market expansion, and product initiatives

## COMPETITIVE OUTLOOK ASSESSMENT
Future competitive dynamics, strategic implications, and market evolution patterns

Base analysis on publicly observable competitive behaviors and logical market assessment.`, query, entities)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: competitiveSystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

func riskMessages(query, intelligenceContext string) []llm.Message {
	context := sanitize.Clean(intelligenceContext, 800)

	user := fmt.Sprintf(`Conduct strategic risk assessment for: %s

**INTELLIGENCE CONTEXT:** %s

Provide quantified risk evaluation across these categories:

## MARKET AND ECONOMIC RISK FACTORS
Risk Level: [High/Medium/Low] (Quantified Score: X/10)
Primary market vulnerabilities and economic sensitivities
Monitoring indicators and mitigation approaches

## COMPETITIVE AND STRATEGIC RISKS
Risk Level: [High/Medium/Low] (Quantified Score: X/10)
Competitive threats and strategic execution risks
Defensive strategies and competitive countermeasures

## TECHNOLOGY AND INNOVATION RISKS
Risk Level: [High/Medium/Low] (Quantified Score: X/10)
Technology disruption threats and innovation challenges
Adaptation strategies and technology investment priorities

## REGULATORY AND OPERATIONAL RISKS
Risk Level: [High/Medium/Low] (Quantified Score: X/10)
Compliance challenges and operational vulnerabilities
Risk mitigation frameworks and operational safeguards

## INTEGRATED RISK PROFILE
Overall Risk Assessment Score: X/10
Top 3 Priority Risk Areas for Strategic Attention
Comprehensive Risk Management Recommendations

Use evidence-based risk evaluation with practical, implementable risk scores.`, query, truncate(context, 600))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: riskSystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

func recommendationMessages(query, synthesis string) []llm.Message {
	user := fmt.Sprintf(`Based on comprehensive intelligence analysis for: %s

**INTELLIGENCE SYNTHESIS:** %s

Generate exactly 6-8 strategic recommendations in this precise format:

1. [Specific implementable strategic action]
2. [Specific implementable strategic action]
3. [Specific implementable strategic action]
4. [Specific implementable strategic action]
5. [Specific implementable strategic action]
6. [Specific implementable strategic action]
7. [Specific implementable strategic action]
8. [Specific implementable strategic action]

Each recommendation must be:
- Directly derived from the intelligence analysis
- Specific and actionable with clear implementation path
- Focused on measurable business outcomes
- Realistic and achievable within standard business constraints

Do not include introductory text or explanations - provide only the numbered recommendations.`, query, synthesis)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: recommendationSystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

func summaryMessages(query, synthesis string, recommendationCount int) []llm.Message {
	user := fmt.Sprintf(`Create executive summary for strategic analysis: %s

**COMPREHENSIVE INTELLIGENCE:** %s
**STRATEGIC INITIATIVES:** %d strategic recommendations developed

Generate executive summary with exactly 3 paragraphs:

**Market Assessment Paragraph:** Current market position, key opportunities, and strategic threats
**Strategic Direction Paragraph:** Recommended strategic approach and competitive positioning
**Implementation Paragraph:** Expected business impact and critical next steps

Use authoritative executive language appropriate for board-level strategic discussions.`,
		query, truncate(synthesis, 800), recommendationCount)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: summarySystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

// synthesize builds the bounded digest of the three analysis bodies that
// feeds the strategic stage. Sections shorter than 100 characters carry no
// signal and are skipped.
func synthesize(sections []labeledSection) string {
	var parts []string
	for _, s := range sections {
		if len(strings.TrimSpace(s.content)) > 100 {
			parts = append(parts, s.label+": "+sanitize.Clean(s.content, 400))
		}
	}
	return truncate(strings.Join(parts, " | "), 1200)
}

type labeledSection struct {
	label   string
	content string
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func truncate(s string, max int) string {
	if runes := []rune(s); len(runes) > max {
		return string(runes[:max])
	}
	return s
}
