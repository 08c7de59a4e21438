package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stratlens/stratlens/api/models"
)

const configErrorReport = `# System Configuration Required

**Status:** GROQ_API_KEY not detected or invalid in environment configuration

## Configuration Steps
1. Obtain an API key from the Groq console
2. Export it as GROQ_API_KEY in the service environment
3. Restart the service for configuration activation

Full business intelligence analysis is unavailable until a valid credential is configured.`

const configErrorStatus = "Configuration Error: API key required for system activation"

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	analysisID := uuid.NewString()
	slog.Debug("received analysis request", "analysis_id", analysisID, "query", req.Query)

	var report, status string
	start := time.Now()
	if s.runner == nil {
		report, status = configErrorReport, configErrorStatus
	} else {
		report, status = s.runner.Run(r.Context(), req.Query, req.Targets)
	}

	resp := models.AnalysisResponse{
		Report: report,
		Status: status,
		Metadata: models.AnalysisMetadata{
			AnalysisID: analysisID,
			Duration:   time.Since(start).String(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode analysis response", "analysis_id", analysisID, "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("health check response failed", "error", err)
	}
}
