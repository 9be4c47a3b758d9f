package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tekstlab/leesmeter/internal/analysis"
	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/cache"
	"github.com/tekstlab/leesmeter/internal/config"
	"github.com/tekstlab/leesmeter/internal/database"
	"github.com/tekstlab/leesmeter/internal/errors"
	"github.com/tekstlab/leesmeter/internal/monitoring"
	"github.com/tekstlab/leesmeter/internal/preprocess"
	"github.com/tekstlab/leesmeter/internal/render"
)

// annotatorClient is the slice of the annotation service client the
// handlers need.
type annotatorClient interface {
	Annotate(ctx context.Context, text string) (*annotation.Document, error)
	Healthy(ctx context.Context) error
}

// Server bundles the handler dependencies.
type Server struct {
	cfg       config.Config
	annotator annotatorClient
	analyzer  *analysis.Analyzer
	repo      *database.Repository
	db        *database.DB
	metrics   *monitoring.Metrics
	logger    *monitoring.Logger
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

type analyzeResponse struct {
	ID       string                     `json:"id"`
	Text     string                     `json:"text"`
	Features *analysis.DocumentFeatures `json:"features"`
}

// handleAnalyze runs the full pipeline: preprocess, annotate, analyze,
// persist.
func (s *Server) handleAnalyze(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Server.RequestTimeout)
	defer cancel()

	start := time.Now()

	var req analyzeRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := errors.NewValidationError("text is required")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	cleaned := preprocess.Text([]byte(req.Text))
	if cleaned == "" {
		appErr := errors.NewValidationError("text contains no analyzable prose")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	doc, err := s.annotator.Annotate(ctx, cleaned)
	s.metrics.RecordAnnotatorCall(err == nil)
	if err != nil {
		appErr := errors.NewAnnotatorError("failed to annotate text", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	features := s.analyzer.AnalyzeDocument(doc)

	rec := s.persistAnalysis(c, cleaned, doc, features)
	s.metrics.IncrementAnalyses()
	s.logger.AnalysisLogger(len(cleaned), features.SentenceCount, features.Score, features.Level, time.Since(start), false)

	c.JSON(http.StatusOK, analyzeResponse{
		ID:       rec.ID,
		Text:     cleaned,
		Features: features,
	})
}

// handleAnalyzeAnnotated accepts a pre-annotated document from callers
// that run their own NLP pipeline.
func (s *Server) handleAnalyzeAnnotated(c *gin.Context) {
	start := time.Now()

	var doc annotation.Document
	if err := c.BindJSON(&doc); err != nil {
		appErr := errors.NewValidationError("invalid annotated document", err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	if err := doc.Validate(); err != nil {
		appErr := errors.NewValidationError("invalid annotated document", err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	features := s.analyzer.AnalyzeDocument(&doc)

	text := documentText(&doc)
	rec := s.persistAnalysis(c, text, &doc, features)
	s.metrics.IncrementAnalyses()
	s.logger.AnalysisLogger(len(text), features.SentenceCount, features.Score, features.Level, time.Since(start), false)

	c.JSON(http.StatusOK, analyzeResponse{
		ID:       rec.ID,
		Text:     text,
		Features: features,
	})
}

// persistAnalysis stores the record asynchronously so slow disks never
// delay the response. The returned record carries the generated ID.
func (s *Server) persistAnalysis(c *gin.Context, text string, doc *annotation.Document, features *analysis.DocumentFeatures) *database.AnalysisRecord {
	featuresJSON, err := json.Marshal(features)
	if err != nil {
		slog.Error("Failed to encode features for storage", "error", err)
		featuresJSON = []byte("{}")
	}

	rec := database.NewAnalysisRecord(
		cache.TextDigest(text),
		features.SentenceCount,
		wordCount(doc),
		features.Score,
		features.Level,
		string(featuresJSON),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
	)

	go func() {
		if err := s.repo.SaveAnalysis(rec); err != nil {
			slog.Error("Failed to save analysis", "error", err, "id", rec.ID)
		}
	}()

	return rec
}

// handleHistory returns recent analyses, newest first.
func (s *Server) handleHistory(c *gin.Context) {
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	summaries, err := s.repo.RecentAnalyses(limit)
	if err != nil {
		appErr := errors.NewInternalError("failed to load history", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": summaries,
		"count":    len(summaries),
	})
}

// handleRender serves the HTML report of a stored analysis.
func (s *Server) handleRender(c *gin.Context) {
	id := c.Param("id")

	rec, err := s.repo.GetAnalysis(id)
	if err == database.ErrNotFound {
		appErr := errors.NewNotFoundError("analysis", id)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}
	if err != nil {
		appErr := errors.NewInternalError("failed to load analysis", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	var features analysis.DocumentFeatures
	if err := json.Unmarshal([]byte(rec.Features), &features); err != nil {
		appErr := errors.NewInternalError("stored analysis is unreadable", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	report := render.Report{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Features:  features,
	}

	if err := render.WriteHTML(c, report); err != nil {
		appErr := errors.NewInternalError("failed to render analysis", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
	}
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"metrics":   s.metrics.GetStats(),
	})
}

// handleReady is the readiness probe: the server is ready when the
// annotation service and the database answer.
func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if err := s.annotator.Healthy(ctx); err != nil {
		checks["annotator"] = err.Error()
		ready = false
	} else {
		checks["annotator"] = "ok"
	}

	if err := s.db.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		ready = false
	} else {
		checks["database"] = "ok"
	}

	status := http.StatusOK
	statusText := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		statusText = "not ready"
	}

	c.JSON(status, gin.H{
		"status":    statusText,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// documentText rebuilds the running text of an annotated document.
func documentText(doc *annotation.Document) string {
	text := ""
	for i := range doc.Sentences {
		if i > 0 {
			text += " "
		}
		text += doc.Sentences[i].Text()
	}
	return text
}

// wordCount counts non-punctuation tokens across the document.
func wordCount(doc *annotation.Document) int {
	count := 0
	for i := range doc.Sentences {
		for j := range doc.Sentences[i].Tokens {
			if !doc.Sentences[i].Tokens[j].IsPunct() {
				count++
			}
		}
	}
	return count
}
