package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"recruitflow/internal/config"
	appErrors "recruitflow/internal/errors"
	"recruitflow/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *appErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *appErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	timeout := getAIModelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Log retry attempt
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	// Log final failure
	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeAIOperation is a generic helper to run AI operations with common
// tracing, circuit breaker, and parsing logic. A reply that does not match
// the requested schema is not an error: the raw text is handed back so the
// caller can run its deterministic fallback parser.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Response[Out], *TokenUsage, error) {
	var resp Response[Out]
	tracer := otel.Tracer("recruitflow.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return resp, nil, appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	rawText := result.Text()
	if err := json.Unmarshal([]byte(rawText), &resp.Output); err != nil {
		g.logger.Warn("AI response did not match schema, returning raw text for fallback parsing",
			"operation", operationName,
			"error", err.Error())
		span.SetAttributes(attribute.Bool("ai.structured", false))
		resp.Structured = false
		resp.Raw = rawText
	} else {
		span.SetAttributes(attribute.Bool("ai.structured", true))
		resp.Structured = true
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return resp, tokenUsage, nil
}

// ScreenResume implements AIProvider interface for candidate screening
func (g *GeminiProvider) ScreenResume(ctx context.Context, input types.ScreenInput) (Response[types.ScreeningResult], *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("screen")
	userPrompt := fmt.Sprintf(g.getUserPrompt("screen"), input.Resume, input.JobDescription)
	cfg := g.buildScreenSchema()

	resp, tokenUsage, err := executeAIOperation[types.ScreeningResult](
		g,
		ctx,
		"screen_resume",
		userPrompt,
		systemPrompt,
		cfg,
		attribute.Int("input.resume_length", len(input.Resume)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)

	if err != nil {
		return Response[types.ScreeningResult]{}, nil, err
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() && resp.Structured {
		span.SetAttributes(
			attribute.Float64("screening.score", resp.Output.Score),
			attribute.Int("output.feedback_length", len(resp.Output.Feedback)),
		)
	}

	return resp, tokenUsage, nil
}

// ScheduleCall implements AIProvider interface for interview scheduling
func (g *GeminiProvider) ScheduleCall(ctx context.Context, input types.ScheduleInput) (Response[types.ScheduledCall], *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("schedule")
	userPrompt := fmt.Sprintf(g.getUserPrompt("schedule"),
		input.CandidateName, input.CandidateEmail, input.InterviewerName, input.InterviewerEmail)
	cfg := g.buildScheduleSchema()

	resp, tokenUsage, err := executeAIOperation[types.ScheduledCall](
		g,
		ctx,
		"schedule_call",
		userPrompt,
		systemPrompt,
		cfg,
		attribute.String("candidate.email", input.CandidateEmail),
	)

	if err != nil {
		return Response[types.ScheduledCall]{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() && resp.Structured {
		span.SetAttributes(
			attribute.String("schedule.call_time", resp.Output.CallTime),
		)
	}

	return resp, tokenUsage, nil
}

// DraftEmail implements AIProvider interface for invitation email drafting
func (g *GeminiProvider) DraftEmail(ctx context.Context, input types.DraftEmailInput) (Response[types.EmailContent], *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("draft")
	userPrompt := fmt.Sprintf(g.getUserPrompt("draft"),
		input.CandidateName, input.CandidateEmail, input.CallTime, input.MeetingURL,
		input.SenderName, input.SenderTitle)
	cfg := g.buildEmailSchema()

	resp, tokenUsage, err := executeAIOperation[types.EmailContent](
		g,
		ctx,
		"draft_email",
		userPrompt,
		systemPrompt,
		cfg,
		attribute.String("candidate.email", input.CandidateEmail),
	)

	if err != nil {
		return Response[types.EmailContent]{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() && resp.Structured {
		span.SetAttributes(
			attribute.Int("output.body_length", len(resp.Output.Body)),
		)
	}

	return resp, tokenUsage, nil
}

// SendEmail implements AIProvider interface for email delivery confirmation
func (g *GeminiProvider) SendEmail(ctx context.Context, input types.SendEmailInput) (Response[types.SendReceipt], *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("send")
	userPrompt := fmt.Sprintf(g.getUserPrompt("send"), input.To, input.Subject, input.Body)
	cfg := g.buildReceiptSchema()

	resp, tokenUsage, err := executeAIOperation[types.SendReceipt](
		g,
		ctx,
		"send_email",
		userPrompt,
		systemPrompt,
		cfg,
		attribute.String("email.to", input.To),
	)

	if err != nil {
		return Response[types.SendReceipt]{}, nil, err
	}

	return resp, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// applyTemperature copies the configured temperature onto a request config
func (g *GeminiProvider) applyTemperature(cfg *genai.GenerateContentConfig) *genai.GenerateContentConfig {
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}

// buildScreenSchema creates the schema for screening requests
func (g *GeminiProvider) buildScreenSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":     {Type: genai.TypeString},
				"email":    {Type: genai.TypeString},
				"score":    {Type: genai.TypeNumber},
				"feedback": {Type: genai.TypeString},
			},
			Required: []string{"name", "email", "score", "feedback"},
		},
	})
}

// buildScheduleSchema creates the schema for scheduling requests
func (g *GeminiProvider) buildScheduleSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":     {Type: genai.TypeString},
				"email":    {Type: genai.TypeString},
				"callTime": {Type: genai.TypeString},
				"url":      {Type: genai.TypeString},
			},
			Required: []string{"name", "email", "callTime", "url"},
		},
	})
}

// buildEmailSchema creates the schema for email drafting requests
func (g *GeminiProvider) buildEmailSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"subject": {Type: genai.TypeString},
				"body":    {Type: genai.TypeString},
			},
			Required: []string{"subject", "body"},
		},
	})
}

// buildReceiptSchema creates the schema for delivery confirmation requests
func (g *GeminiProvider) buildReceiptSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"to":           {Type: genai.TypeString},
				"subject":      {Type: genai.TypeString},
				"confirmation": {Type: genai.TypeString},
			},
			Required: []string{"to", "subject", "confirmation"},
		},
	})
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configSystemPrompts *config.SystemPrompts
	if configPrompts != nil {
		configSystemPrompts = &configPrompts.SystemPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configSystemPrompts = &config.SystemPrompts{}
	}

	switch promptType {
	case "screen":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.Screen,
			configSystemPrompts.Screen,
			DefaultSystemPrompts.Screen,
		)
	case "schedule":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.Schedule,
			configSystemPrompts.Schedule,
			DefaultSystemPrompts.Schedule,
		)
	case "draft":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.Draft,
			configSystemPrompts.Draft,
			DefaultSystemPrompts.Draft,
		)
	case "send":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.Send,
			configSystemPrompts.Send,
			DefaultSystemPrompts.Send,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configUserPrompts *config.UserPrompts
	if configPrompts != nil {
		configUserPrompts = &configPrompts.UserPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configUserPrompts = &config.UserPrompts{}
	}

	switch promptType {
	case "screen":
		return resolvePrompt(
			loadedPrompts.UserPrompts.Screen,
			configUserPrompts.Screen,
			DefaultUserPrompts.Screen,
		)
	case "schedule":
		return resolvePrompt(
			loadedPrompts.UserPrompts.Schedule,
			configUserPrompts.Schedule,
			DefaultUserPrompts.Schedule,
		)
	case "draft":
		return resolvePrompt(
			loadedPrompts.UserPrompts.Draft,
			configUserPrompts.Draft,
			DefaultUserPrompts.Draft,
		)
	case "send":
		return resolvePrompt(
			loadedPrompts.UserPrompts.Send,
			configUserPrompts.Send,
			DefaultUserPrompts.Send,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the configured AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	// TODO: plumb observability.healthCheck.aiModelCheckTimeout through here
	return 10 * time.Second
}

// getPrompts returns the appropriate prompts for the operation, prioritizing loaded content over config
func (g *GeminiProvider) getPrompts(operationType string) (config.OperationLoadedPrompts, *config.PromptConfig) {
	// Get loaded prompts (returns a copy)
	loadedPrompts := config.GetPromptsForOperation(operationType)
	configPrompts := &g.config.CustomPrompts
	return loadedPrompts, configPrompts
}

// resolvePrompt selects the correct prompt string based on priority:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
