package recruiting

import (
	"context"
	"strings"
	"time"

	"recruitflow/internal/ai"
	"recruitflow/internal/config"
	"recruitflow/internal/errors"
	"recruitflow/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// PipelineOptions holds the tunable parts of a pipeline run
type PipelineOptions struct {
	MinScore         float64
	TimezoneLabel    string
	RoleTitle        string
	InterviewerName  string
	InterviewerEmail string
	SenderName       string
	SenderTitle      string
}

// OptionsFromConfig builds PipelineOptions from application configuration
func OptionsFromConfig(cfg *config.PipelineConfig) PipelineOptions {
	return PipelineOptions{
		MinScore:         cfg.MinScore,
		TimezoneLabel:    cfg.TimezoneLabel,
		RoleTitle:        cfg.RoleTitle,
		InterviewerName:  cfg.InterviewerName,
		InterviewerEmail: cfg.InterviewerEmail,
		SenderName:       cfg.SenderName,
		SenderTitle:      cfg.SenderTitle,
	}
}

// Providers bundles the per-operation AI providers used by the pipeline
type Providers struct {
	Screen   ai.AIProvider
	Schedule ai.AIProvider
	Draft    ai.AIProvider
	Send     ai.AIProvider
}

// Pipeline runs candidates through the four-stage recruitment workflow:
// screen, schedule, draft, send. Stages run strictly sequentially and a
// stage failure never aborts the run; it only stops that candidate from
// advancing.
type Pipeline struct {
	providers Providers
	extractor *Extractor
	opts      PipelineOptions
	logger    *errors.Logger
	now       func() time.Time
}

// NewPipeline creates a Pipeline wired to per-operation AI services
func NewPipeline(cfg *config.Config, logger *errors.Logger) (*Pipeline, error) {
	screenCfg := cfg.GetScreenConfig()
	scheduleCfg := cfg.GetScheduleConfig()
	draftCfg := cfg.GetDraftConfig()
	sendCfg := cfg.GetSendConfig()

	screenSvc, err := ai.NewService(&screenCfg, "Screen", logger)
	if err != nil {
		return nil, err
	}
	scheduleSvc, err := ai.NewService(&scheduleCfg, "Schedule", logger)
	if err != nil {
		return nil, err
	}
	draftSvc, err := ai.NewService(&draftCfg, "Draft", logger)
	if err != nil {
		return nil, err
	}
	sendSvc, err := ai.NewService(&sendCfg, "Send", logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		providers: Providers{
			Screen:   screenSvc.Provider,
			Schedule: scheduleSvc.Provider,
			Draft:    draftSvc.Provider,
			Send:     sendSvc.Provider,
		},
		extractor: NewExtractor(cfg.Pipeline.PdftotextPath, logger),
		opts:      OptionsFromConfig(&cfg.Pipeline),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// NewPipelineWithProviders creates a Pipeline with injected providers.
// Used by tests and by callers that manage provider lifecycles themselves.
func NewPipelineWithProviders(providers Providers, extractor *Extractor, opts PipelineOptions, logger *errors.Logger) *Pipeline {
	return &Pipeline{
		providers: providers,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessCandidates runs every resume through screening, then schedules
// interviews and sends invitations for candidates at or above the
// minimum score. Validation failures are reported in the result's Error
// field with empty (non-nil) collections.
func (p *Pipeline) ProcessCandidates(ctx context.Context, resumePaths []string, jobDescription string) types.PipelineResult {
	result := types.PipelineResult{
		AllCandidates:      []types.ScreeningResult{},
		SelectedCandidates: []types.ScreeningResult{},
		Results:            []types.CandidateResult{},
		EmailContents:      map[string]types.EmailContent{},
	}

	if len(resumePaths) == 0 {
		p.logger.LogError(errors.NewValidationError(errors.ErrCodeEmptyInput,
			"No candidate resume files provided", nil), "Pipeline input validation failed")
		result.Error = "No candidate resume files provided"
		return result
	}
	if strings.TrimSpace(jobDescription) == "" {
		p.logger.LogError(errors.NewValidationError(errors.ErrCodeEmptyInput,
			"No job description provided", nil), "Pipeline input validation failed")
		result.Error = "No job description provided"
		return result
	}

	tracer := otel.Tracer("recruitflow.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.process_candidates")
	defer span.End()
	span.SetAttributes(
		attribute.Int("pipeline.resume_count", len(resumePaths)),
		attribute.Float64("pipeline.min_score", p.opts.MinScore),
	)

	p.logger.Info("Starting recruitment pipeline",
		"candidates", len(resumePaths),
		"min_score", p.opts.MinScore)

	cache := newResumeCache()

	// Phase 1: candidate screening
	for i, path := range resumePaths {
		p.logger.Info("Screening candidate",
			"index", i+1,
			"total", len(resumePaths),
			"path", path)

		screening, err := p.screenCandidate(ctx, path, jobDescription, cache)
		if err != nil {
			// Silent drop: the candidate simply does not appear in results
			p.logger.LogError(err, "Failed to process candidate", "path", path)
			continue
		}

		result.AllCandidates = append(result.AllCandidates, *screening)

		status := types.StatusSelected
		if screening.Score < p.opts.MinScore {
			status = types.StatusRejected
		}
		result.Results = append(result.Results, types.CandidateResult{
			Name:     screening.Name,
			Email:    screening.Email,
			Score:    screening.Score,
			Feedback: screening.Feedback,
			Status:   status,
		})

		if status == types.StatusSelected {
			result.SelectedCandidates = append(result.SelectedCandidates, *screening)
			p.logger.Info("Candidate selected",
				"name", screening.Name,
				"score", screening.Score)
		} else {
			p.logger.Info("Candidate rejected",
				"name", screening.Name,
				"score", screening.Score,
				"min_score", p.opts.MinScore)
		}
	}

	// Phase 2: interview scheduling and email communication
	if len(result.SelectedCandidates) == 0 {
		p.logger.Info("No candidates selected for interviews")
	}
	for i, candidate := range result.SelectedCandidates {
		p.logger.Info("Processing interview",
			"index", i+1,
			"total", len(result.SelectedCandidates),
			"name", candidate.Name)

		call, err := p.scheduleInterview(ctx, candidate)
		if err != nil {
			// Candidate row stays "selected"
			p.logger.LogError(err, "Failed to schedule interview", "name", candidate.Name)
			continue
		}

		email, err := p.sendInvitation(ctx, candidate, *call)
		if err != nil {
			p.logger.LogError(err, "Failed to send invitation", "name", candidate.Name)
		}

		// Update the first result row matching this candidate's email
		for j := range result.Results {
			if result.Results[j].Email != candidate.Email {
				continue
			}
			result.Results[j].InterviewTime = call.CallTime
			result.Results[j].MeetingURL = call.URL
			if email != nil {
				result.Results[j].EmailSubject = email.Subject
				result.Results[j].Status = types.StatusEmailSent
				result.EmailContents[candidate.Email] = *email
			} else {
				result.Results[j].Status = types.StatusScheduled
			}
			break
		}
	}

	span.SetAttributes(
		attribute.Int("pipeline.screened", len(result.AllCandidates)),
		attribute.Int("pipeline.selected", len(result.SelectedCandidates)),
		attribute.Int("pipeline.emails_sent", len(result.EmailContents)),
	)
	p.logger.Info("Recruitment pipeline complete",
		"screened", len(result.AllCandidates),
		"selected", len(result.SelectedCandidates),
		"emails_sent", len(result.EmailContents))

	return result
}

// Close releases the pipeline's AI providers
func (p *Pipeline) Close() error {
	var firstErr error
	for _, provider := range []ai.AIProvider{p.providers.Screen, p.providers.Schedule, p.providers.Draft, p.providers.Send} {
		if provider == nil {
			continue
		}
		if err := provider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
