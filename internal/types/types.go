package types

// ScreeningResult represents the outcome of screening one resume
// against a job description.
type ScreeningResult struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// ScheduledCall represents a booked interview slot
type ScheduledCall struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	CallTime string `json:"callTime"`
	URL      string `json:"url"`
}

// EmailContent represents a drafted interview invitation
type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CandidateStatus tracks how far a candidate advanced through the pipeline
type CandidateStatus string

const (
	StatusRejected  CandidateStatus = "rejected"
	StatusSelected  CandidateStatus = "selected"
	StatusScheduled CandidateStatus = "scheduled"
	StatusEmailSent CandidateStatus = "email_sent"
)

// CandidateResult is the per-candidate row in the pipeline output.
// The optional fields are only set once the corresponding stage succeeded.
type CandidateResult struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Score         float64         `json:"score"`
	Feedback      string          `json:"feedback"`
	Status        CandidateStatus `json:"status"`
	InterviewTime string          `json:"interviewTime,omitempty"`
	MeetingURL    string          `json:"meetingUrl,omitempty"`
	EmailSubject  string          `json:"emailSubject,omitempty"`
}

// PipelineResult represents the full outcome of a pipeline run
type PipelineResult struct {
	AllCandidates      []ScreeningResult       `json:"allCandidates"`
	SelectedCandidates []ScreeningResult       `json:"selectedCandidates"`
	Results            []CandidateResult       `json:"results"`
	EmailContents      map[string]EmailContent `json:"emailContents"`
	Error              string                  `json:"error,omitempty"`
}

// ScreenInput represents the input for screening a single resume
type ScreenInput struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

// ScheduleInput represents the input for scheduling an interview call
type ScheduleInput struct {
	CandidateName    string `json:"candidateName"`
	CandidateEmail   string `json:"candidateEmail"`
	InterviewerName  string `json:"interviewerName"`
	InterviewerEmail string `json:"interviewerEmail"`
}

// DraftEmailInput represents the input for drafting an invitation email
type DraftEmailInput struct {
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	CallTime       string `json:"callTime"`
	MeetingURL     string `json:"meetingUrl"`
	SenderName     string `json:"senderName"`
	SenderTitle    string `json:"senderTitle"`
}

// SendEmailInput represents the input for delivering a drafted email
type SendEmailInput struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendReceipt represents the delivery acknowledgment for a sent email
type SendReceipt struct {
	To           string `json:"to"`
	Subject      string `json:"subject"`
	Confirmation string `json:"confirmation"`
}
