package recruiting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"recruitflow/internal/types"
)

// Fallback parsing for AI replies that did not match the requested
// schema. The rules are deterministic so behavior is testable: missing
// fields get documented defaults rather than failing the stage.

const (
	defaultCandidateName = "Unknown Candidate"
	defaultScore         = 5.0
	maxFeedbackLength    = 1000
)

var (
	// The name must be introduced by a literal "name:" label; prose
	// mentioning a name without the colon falls through to the default.
	nameLineRe = regexp.MustCompile(`(?i)name:\s*(.+)`)
	emailRe    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	subjectRe  = regexp.MustCompile(`(?i)subject[:\s]+(.*?)[\n\r]`)

	// Score patterns are tried in order; the first match wins.
	scorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)score[:\s]+(\d+\.?\d*)`),
		regexp.MustCompile(`(\d+\.?\d*)/10`),
		regexp.MustCompile(`(?i)rating[:\s]+(\d+\.?\d*)`),
	}
)

// parseScreeningText recovers a ScreeningResult from free-form model text
func parseScreeningText(text string) types.ScreeningResult {
	name := defaultCandidateName
	if m := nameLineRe.FindStringSubmatch(text); m != nil {
		name = strings.TrimSpace(m[1])
	}

	email := emailRe.FindString(text)
	if email == "" {
		email = placeholderEmail(name)
	}

	score := defaultScore
	for _, re := range scorePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		parsed, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if parsed > 10 {
			// Values like 85 are treated as percentages of 10
			parsed = parsed / 10
		}
		score = parsed
		break
	}

	feedback := text
	if runes := []rune(feedback); len(runes) > maxFeedbackLength {
		feedback = string(runes[:maxFeedbackLength])
	}

	return types.ScreeningResult{
		Name:     name,
		Email:    email,
		Score:    score,
		Feedback: feedback,
	}
}

// placeholderEmail derives a synthetic address from a candidate name
func placeholderEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
}

// parseEmailText recovers an EmailContent from free-form model text.
// When the text is too short to be a plausible email body, a fixed
// template addressed to the candidate is used instead.
func parseEmailText(text string, candidate types.ScreeningResult, call types.ScheduledCall, p PipelineOptions) types.EmailContent {
	subject := fmt.Sprintf("Interview Invitation - %s Position", p.RoleTitle)
	if m := subjectRe.FindStringSubmatch(text); m != nil {
		subject = strings.TrimSpace(m[1])
	}

	body := text
	if len(text) <= 50 {
		body = fmt.Sprintf(`Dear %s,

Congratulations! We are excited to inform you that you have been selected to move forward in the hiring process.

Interview Details:
- Date & Time: %s
- Duration: 1 hour
- Meeting Link: %s

Please confirm your availability for this time slot by replying to this email.

We look forward to speaking with you!

Best regards,
%s
%s`, candidate.Name, call.CallTime, call.URL, p.SenderName, p.SenderTitle)
	}

	return types.EmailContent{
		Subject: subject,
		Body:    body,
	}
}
