// Package models defines the request/response contract of the analysis API.
package models

type AnalysisRequest struct {
	// Query is the free-text research question to analyze.
	Query string `json:"query"`

	// Targets is an optional comma-separated list of entity names to
	// focus the competitive analysis on (maximum 8).
	Targets string `json:"targets,omitempty"`
}

type AnalysisResponse struct {
	// Report is the rendered business intelligence document.
	Report string `json:"report"`

	// Status is a one-line performance summary of the run.
	Status string `json:"status"`

	// Metadata about the analysis
	Metadata AnalysisMetadata `json:"metadata"`
}

type AnalysisMetadata struct {
	// Identifier assigned to this analysis run
	AnalysisID string `json:"analysisId"`

	// Wall-clock time the run took
	Duration string `json:"duration"`
}
