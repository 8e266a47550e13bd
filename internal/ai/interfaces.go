package ai

import (
	"context"

	"recruitflow/internal/types"
)

// Response wraps an AI operation result. When the model reply does not
// match the requested schema, Structured is false and Raw carries the
// model text so callers can run their own fallback parsing.
type Response[T any] struct {
	Output     T
	Structured bool
	Raw        string
}

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	ScreenResume(ctx context.Context, input types.ScreenInput) (Response[types.ScreeningResult], *TokenUsage, error)
	ScheduleCall(ctx context.Context, input types.ScheduleInput) (Response[types.ScheduledCall], *TokenUsage, error)
	DraftEmail(ctx context.Context, input types.DraftEmailInput) (Response[types.EmailContent], *TokenUsage, error)
	SendEmail(ctx context.Context, input types.SendEmailInput) (Response[types.SendReceipt], *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
