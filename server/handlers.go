package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/triagit/core"
)

// Error messages returned to clients. Internal error details are logged,
// never exposed.
const (
	msgInvalidDescription = "Invalid symptom description."
	msgNotHealthRelated   = "Input is not health-related."
	msgRateLimited        = "Currently you have hit the rate limit, so it's not possible."
	msgInternalError      = "Internal Server Error"
	msgFetchReportsFailed = "Failed to fetch reports."
)

type submitRequest struct {
	Description string `json:"description"`
}

type submitResponse struct {
	Success      bool   `json:"success"`
	Id           uint64 `json:"id"`
	UrgencyLevel string `json:"urgency_level,omitempty"`
	Category     string `json:"category,omitempty"`
	TriageLabel  string `json:"triage_label,omitempty"`
}

type matchEntry struct {
	PageContent string         `json:"pageContent"`
	Metadata    map[string]any `json:"metadata"`
	Score       float32        `json:"score"`
}

type reportEntry struct {
	Id                 uint64    `json:"id"`
	SymptomDescription string    `json:"symptom_description"`
	UrgencyLevel       string    `json:"urgency_level,omitempty"`
	Category           string    `json:"category,omitempty"`
	TriageLabel        string    `json:"triage_label,omitempty"`
	Status             string    `json:"status"`
	ErrorMessage       string    `json:"error_message,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidDescription)
		return
	}

	report, err := s.pipeline.Submit(c.Request.Context(), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, msgInvalidDescription)
		case errors.Is(err, core.ErrNotHealthRelated):
			respondError(c, http.StatusBadRequest, msgNotHealthRelated)
		case errors.Is(err, core.ErrRateLimited):
			respondError(c, http.StatusTooManyRequests, msgRateLimited)
		default:
			s.logger.Error("submit failed", "err", err, "request_id", c.GetString("request_id"))
			respondError(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		Success:      true,
		Id:           uint64(report.Id),
		UrgencyLevel: string(report.Urgency),
		Category:     report.Category,
		TriageLabel:  report.TriageLabel,
	})
}

func (s *Server) handleSemanticSearch(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidDescription)
		return
	}

	results, err := s.searcher.FindSimilar(c.Request.Context(), req.Description, 0)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, msgInvalidDescription)
			return
		}
		s.logger.Error("semantic search failed", "err", err, "request_id", c.GetString("request_id"))
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	matches := make([]matchEntry, 0, len(results))
	for _, result := range results {
		matches = append(matches, matchEntry{
			PageContent: result.Report.Description,
			Metadata: map[string]any{
				"id":            uint64(result.Report.Id),
				"urgency_level": string(result.Report.Urgency),
				"category":      result.Report.Category,
				"triage_label":  result.Report.TriageLabel,
				"created_at":    result.Report.CreatedAt,
			},
			Score: result.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (s *Server) handleReports(c *gin.Context) {
	reports, err := s.reports.GetRecentReports(c.Request.Context(), defaultReportsLimit)
	if err != nil {
		s.logger.Error("failed to list reports", "err", err, "request_id", c.GetString("request_id"))
		respondError(c, http.StatusInternalServerError, msgFetchReportsFailed)
		return
	}

	entries := make([]reportEntry, 0, len(reports))
	for _, report := range reports {
		entries = append(entries, reportEntry{
			Id:                 uint64(report.Id),
			SymptomDescription: report.Description,
			UrgencyLevel:       string(report.Urgency),
			Category:           report.Category,
			TriageLabel:        report.TriageLabel,
			Status:             string(report.Status),
			ErrorMessage:       report.ErrorMessage,
			CreatedAt:          report.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
