package recruiting

import (
	"context"
	"fmt"
	"strings"

	"recruitflow/internal/errors"
	"recruitflow/internal/types"
)

// screenCandidate extracts a resume (through the per-run cache) and
// screens it against the job description. A reply that did not match
// the schema is recovered with the deterministic text parser.
func (p *Pipeline) screenCandidate(ctx context.Context, path, jobDescription string, cache *resumeCache) (*types.ScreeningResult, error) {
	text, ok := cache.Get(path)
	if !ok {
		extracted, err := p.extractor.ExtractText(ctx, path)
		if err != nil {
			return nil, err
		}
		if extracted == "" {
			return nil, errors.NewIOError(errors.ErrCodeExtractionFailed,
				fmt.Sprintf("Could not extract text from resume: %s", path), nil)
		}
		cache.Put(path, extracted)
		text = extracted
	} else {
		p.logger.Debug("Using cached resume content", "path", path)
	}

	resp, _, err := p.providers.Screen.ScreenResume(ctx, types.ScreenInput{
		Resume:         text,
		JobDescription: jobDescription,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeScreeningFailed,
			fmt.Sprintf("Screening failed for %s", path), err)
	}

	if resp.Structured {
		result := resp.Output
		p.logger.Info("Screening complete",
			"name", result.Name,
			"score", result.Score)
		return &result, nil
	}

	p.logger.Warn("Screening result not in expected format, attempting fallback parsing",
		"path", path)
	result := parseScreeningText(resp.Raw)
	p.logger.Info("Screening complete via fallback parsing",
		"name", result.Name,
		"score", result.Score)
	return &result, nil
}

// scheduleInterview books an interview slot for a selected candidate.
// An unstructured reply falls back to the simulated scheduler, which
// always produces a valid slot.
func (p *Pipeline) scheduleInterview(ctx context.Context, candidate types.ScreeningResult) (*types.ScheduledCall, error) {
	resp, _, err := p.providers.Schedule.ScheduleCall(ctx, types.ScheduleInput{
		CandidateName:    candidate.Name,
		CandidateEmail:   candidate.Email,
		InterviewerName:  p.opts.InterviewerName,
		InterviewerEmail: p.opts.InterviewerEmail,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeSchedulingFailed,
			fmt.Sprintf("Scheduling failed for %s", candidate.Name), err)
	}

	if resp.Structured {
		call := resp.Output
		p.logger.Info("Interview scheduled", "call_time", call.CallTime)
		return &call, nil
	}

	p.logger.Warn("Scheduling result not in expected format, using simulated slot",
		"name", candidate.Name)
	call := simulateScheduling(candidate, p.now(), p.opts.TimezoneLabel)
	p.logger.Info("Interview scheduled via fallback", "call_time", call.CallTime)
	return &call, nil
}

// sendInvitation drafts the invitation email and delivers it. A nil
// EmailContent with non-nil error means the candidate stays in the
// "scheduled" state.
func (p *Pipeline) sendInvitation(ctx context.Context, candidate types.ScreeningResult, call types.ScheduledCall) (*types.EmailContent, error) {
	draftResp, _, err := p.providers.Draft.DraftEmail(ctx, types.DraftEmailInput{
		CandidateName:  candidate.Name,
		CandidateEmail: candidate.Email,
		CallTime:       call.CallTime,
		MeetingURL:     call.URL,
		SenderName:     p.opts.SenderName,
		SenderTitle:    p.opts.SenderTitle,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeEmailFailed,
			fmt.Sprintf("Email drafting failed for %s", candidate.Name), err)
	}

	var email types.EmailContent
	if draftResp.Structured {
		email = draftResp.Output
	} else {
		p.logger.Warn("Email content not in expected format, using fallback",
			"name", candidate.Name)
		email = parseEmailText(draftResp.Raw, candidate, call, p.opts)
	}
	p.logger.Info("Generated invitation email", "subject", email.Subject)

	sendResp, _, err := p.providers.Send.SendEmail(ctx, types.SendEmailInput{
		To:      candidate.Email,
		Subject: email.Subject,
		Body:    email.Body,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeEmailFailed,
			fmt.Sprintf("Email delivery failed for %s", candidate.Email), err)
	}

	receipt := sendResp.Output
	if !sendResp.Structured {
		receipt = simulateDelivery(types.SendEmailInput{
			To:      candidate.Email,
			Subject: email.Subject,
			Body:    email.Body,
		}, p.now())
	}
	p.logger.Info("Invitation delivered",
		"to", receipt.To,
		"confirmation", receipt.Confirmation)

	return &email, nil
}

// ScreenOne screens a single resume without running the rest of the
// pipeline. Used by the screen command and the HTTP screening endpoint.
func (p *Pipeline) ScreenOne(ctx context.Context, path, jobDescription string) (*types.ScreeningResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeEmptyInput,
			"No job description provided", nil)
	}
	return p.screenCandidate(ctx, path, jobDescription, newResumeCache())
}
