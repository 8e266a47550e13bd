package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"recruitflow/internal/observability"
	"recruitflow/internal/recruiting"
	"recruitflow/internal/types"
	"recruitflow/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// createProcessHandler wraps the pipeline handler with observability
func (s *Server) createProcessHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("recruitflow.api")
		ctx, span := tracer.Start(ctx, "api.process")
		defer span.End()

		// Parse request
		var req ProcessRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if len(req.Resumes) == 0 {
			err := fmt.Errorf("missing resumes")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resumes", "resumes field must contain at least one document", http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_count", len(req.Resumes)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "process"),
		)

		// The pipeline works on files, so stage the uploaded documents
		// into a per-request scratch directory.
		resumePaths, cleanup, err := stageResumeDocuments(req.Resumes)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "staging"))
			writeErrorResponse(w, "Failed to stage resume documents", err.Error(), http.StatusInternalServerError)
			return
		}
		defer cleanup()

		pipeline, err := recruiting.NewPipeline(s.AppConfig, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create recruitment pipeline", err.Error(), http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := pipeline.Close(); err != nil {
				s.Logger.Warn("Failed to close pipeline", "error", err)
			}
		}()

		result := pipeline.ProcessCandidates(ctx, resumePaths, req.JobDescription)

		metrics := om.GetMetrics()
		s.recordPipelineMetrics(ctx, metrics, om, result)

		span.SetAttributes(
			attribute.Bool("success", result.Error == ""),
			attribute.Int("response.screened", len(result.AllCandidates)),
			attribute.Int("response.selected", len(result.SelectedCandidates)),
			attribute.Int("response.emails_sent", len(result.EmailContents)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createScreenHandler wraps the single-resume screening handler with observability
func (s *Server) createScreenHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("recruitflow.api")
		ctx, span := tracer.Start(ctx, "api.screen")
		defer span.End()

		var req ScreenRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Resume) == "" {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume", "resume field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "screen"),
		)

		resumePaths, cleanup, err := stageResumeDocuments([]ResumeDocument{{Content: req.Resume}})
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "staging"))
			writeErrorResponse(w, "Failed to stage resume document", err.Error(), http.StatusInternalServerError)
			return
		}
		defer cleanup()

		pipeline, err := recruiting.NewPipeline(s.AppConfig, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create recruitment pipeline", err.Error(), http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := pipeline.Close(); err != nil {
				s.Logger.Warn("Failed to close pipeline", "error", err)
			}
		}()

		result, err := pipeline.ScreenOne(ctx, resumePaths[0], req.JobDescription)
		metrics := om.GetMetrics()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "candidate_screened", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to screen resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "candidate_screened", true, om,
			attribute.Float64("screening.score", result.Score))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("screening.score", result.Score),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// recordPipelineMetrics translates a pipeline result into business metrics
func (s *Server) recordPipelineMetrics(ctx context.Context, metrics *observability.Metrics, om *observability.ObservabilityManager, result types.PipelineResult) {
	metrics.RecordBusinessMetric(ctx, "pipeline_run", result.Error == "", om,
		attribute.Int("screened", len(result.AllCandidates)),
		attribute.Int("selected", len(result.SelectedCandidates)))

	for _, row := range result.Results {
		metrics.RecordBusinessMetric(ctx, "candidate_screened", true, om,
			attribute.String("status", string(row.Status)))
		if row.InterviewTime != "" {
			metrics.RecordBusinessMetric(ctx, "interview_scheduled", true, om)
		}
		if row.Status == types.StatusEmailSent {
			metrics.RecordBusinessMetric(ctx, "email_sent", true, om)
		}
	}
}

// stageResumeDocuments writes uploaded resume contents to temp files the
// pipeline can read. The returned cleanup removes the scratch directory.
func stageResumeDocuments(docs []ResumeDocument) ([]string, func(), error) {
	dir, err := os.MkdirTemp("", "recruitflow-intake-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	paths := make([]string, 0, len(docs))
	for i, doc := range docs {
		name := filepath.Base(doc.Filename)
		if name == "." || name == "/" || name == "" {
			name = fmt.Sprintf("candidate_%d.txt", i+1)
		}
		if !utils.IsResumeFile(name) {
			name += ".txt"
		}
		// Prefix with the document index so same-named uploads do not
		// overwrite each other in the scratch directory.
		name = fmt.Sprintf("%d_%s", i+1, name)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc.Content), 0600); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to write resume document %s: %w", name, err)
		}
		paths = append(paths, path)
	}

	return paths, cleanup, nil
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
