package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"recruitflow/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "PipelineResult", &PipelineTextFormatter{})
	registry.RegisterFormatter("markdown", "PipelineResult", &PipelineMarkdownFormatter{})
	registry.RegisterFormatter("text", "ScreeningResult", &ScreeningTextFormatter{})
	registry.RegisterFormatter("markdown", "ScreeningResult", &ScreeningMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.PipelineResult:
		return "PipelineResult"
	case types.ScreeningResult:
		return "ScreeningResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// PipelineTextFormatter handles text formatting for pipeline results
type PipelineTextFormatter struct{}

func (ptf *PipelineTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.PipelineResult)
	if !ok {
		return "", fmt.Errorf("expected PipelineResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RECRUITMENT PIPELINE RESULTS ===\n\n")
	if result.Error != "" {
		output.WriteString(fmt.Sprintf("Error: %s\n", result.Error))
		return output.String(), nil
	}

	output.WriteString(fmt.Sprintf("Candidates screened: %d\n", len(result.AllCandidates)))
	output.WriteString(fmt.Sprintf("Candidates selected: %d\n\n", len(result.SelectedCandidates)))

	for i, row := range result.Results {
		output.WriteString(fmt.Sprintf("%d. %s <%s>\n", i+1, row.Name, row.Email))
		output.WriteString(fmt.Sprintf("   Score: %.1f/10\n", row.Score))
		output.WriteString(fmt.Sprintf("   Status: %s\n", row.Status))
		if row.InterviewTime != "" {
			output.WriteString(fmt.Sprintf("   Interview: %s\n", row.InterviewTime))
		}
		if row.MeetingURL != "" {
			output.WriteString(fmt.Sprintf("   Meeting: %s\n", row.MeetingURL))
		}
		if row.EmailSubject != "" {
			output.WriteString(fmt.Sprintf("   Email: %s\n", row.EmailSubject))
		}
		output.WriteString("\n")
	}

	if len(result.EmailContents) > 0 {
		output.WriteString("=== SENT EMAILS ===\n\n")
		for _, row := range result.Results {
			email, ok := result.EmailContents[row.Email]
			if !ok {
				continue
			}
			output.WriteString(fmt.Sprintf("To: %s\n", row.Email))
			output.WriteString(fmt.Sprintf("Subject: %s\n\n", email.Subject))
			output.WriteString(email.Body)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (ptf *PipelineTextFormatter) SupportedType() string {
	return "PipelineResult"
}

// PipelineMarkdownFormatter handles markdown formatting for pipeline results
type PipelineMarkdownFormatter struct{}

func (pmf *PipelineMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.PipelineResult)
	if !ok {
		return "", fmt.Errorf("expected PipelineResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Recruitment Pipeline Results\n\n")
	if result.Error != "" {
		output.WriteString(fmt.Sprintf("**Error:** %s\n", result.Error))
		return output.String(), nil
	}

	output.WriteString(fmt.Sprintf("**Candidates screened:** %d\n\n", len(result.AllCandidates)))
	output.WriteString(fmt.Sprintf("**Candidates selected:** %d\n\n", len(result.SelectedCandidates)))

	output.WriteString("## Candidates\n\n")
	output.WriteString("| Name | Email | Score | Status | Interview |\n")
	output.WriteString("|------|-------|-------|--------|----------|\n")
	for _, row := range result.Results {
		interview := row.InterviewTime
		if interview == "" {
			interview = "-"
		}
		output.WriteString(fmt.Sprintf("| %s | %s | %.1f | %s | %s |\n",
			row.Name, row.Email, row.Score, row.Status, interview))
	}
	output.WriteString("\n")

	if len(result.EmailContents) > 0 {
		output.WriteString("## Sent Emails\n\n")
		for _, row := range result.Results {
			email, ok := result.EmailContents[row.Email]
			if !ok {
				continue
			}
			output.WriteString(fmt.Sprintf("### %s\n\n", row.Email))
			output.WriteString(fmt.Sprintf("**Subject:** %s\n\n", email.Subject))
			output.WriteString(email.Body)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (pmf *PipelineMarkdownFormatter) SupportedType() string {
	return "PipelineResult"
}

// ScreeningTextFormatter handles text formatting for single screening results
type ScreeningTextFormatter struct{}

func (stf *ScreeningTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreeningResult)
	if !ok {
		return "", fmt.Errorf("expected ScreeningResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SCREENING ===\n\n")
	output.WriteString(fmt.Sprintf("Name:  %s\n", result.Name))
	output.WriteString(fmt.Sprintf("Email: %s\n", result.Email))
	output.WriteString(fmt.Sprintf("Score: %.1f/10\n\n", result.Score))
	output.WriteString("Feedback:\n")
	output.WriteString(result.Feedback)
	output.WriteString("\n")

	return output.String(), nil
}

func (stf *ScreeningTextFormatter) SupportedType() string {
	return "ScreeningResult"
}

// ScreeningMarkdownFormatter handles markdown formatting for single screening results
type ScreeningMarkdownFormatter struct{}

func (smf *ScreeningMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreeningResult)
	if !ok {
		return "", fmt.Errorf("expected ScreeningResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Screening\n\n")
	output.WriteString(fmt.Sprintf("**Name:** %s\n\n", result.Name))
	output.WriteString(fmt.Sprintf("**Email:** %s\n\n", result.Email))
	output.WriteString(fmt.Sprintf("**Score:** %.1f/10\n\n", result.Score))
	output.WriteString("## Feedback\n\n")
	output.WriteString(result.Feedback)
	output.WriteString("\n")

	return output.String(), nil
}

func (smf *ScreeningMarkdownFormatter) SupportedType() string {
	return "ScreeningResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
