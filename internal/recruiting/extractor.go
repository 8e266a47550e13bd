package recruiting

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"recruitflow/internal/errors"
	"recruitflow/internal/utils"
)

// MinExtractedTextLength is the minimum number of characters an extraction
// must produce to be considered usable.
const MinExtractedTextLength = 50

// Extractor pulls plain text out of resume files. PDF extraction shells
// out to pdftotext (poppler-utils); plain text files are read directly.
type Extractor struct {
	pdftotextPath string
	logger        *errors.Logger
}

// NewExtractor creates an Extractor using the given pdftotext binary path.
// An empty path falls back to "pdftotext" on PATH.
func NewExtractor(pdftotextPath string, logger *errors.Logger) *Extractor {
	if pdftotextPath == "" {
		pdftotextPath = "pdftotext"
	}
	return &Extractor{
		pdftotextPath: pdftotextPath,
		logger:        logger,
	}
}

// ExtractText extracts text content from a resume file. It returns an
// empty string (without error) when the file yields too little text to
// be a usable resume.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	if err := utils.ValidateInputFile(path); err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read resume file: %s", path), err)
	}

	var (
		text string
		err  error
	)
	switch {
	case utils.IsPDFFile(path):
		text, err = e.extractPDF(ctx, path)
	case utils.IsTextFile(path):
		text, err = e.extractPlainText(path)
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported resume format: %s", utils.GetFileExtension(path)), nil)
	}
	if err != nil {
		return "", err
	}

	text = normalizeExtractedText(text)
	if len(text) < MinExtractedTextLength {
		e.logger.Warn("Extracted text too short to be a usable resume",
			"path", path,
			"length", len(text))
		return "", nil
	}

	e.logger.Debug("Extracted resume text",
		"path", path,
		"length", len(text))
	return text, nil
}

// extractPDF converts a PDF to text via pdftotext, writing to stdout
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, e.pdftotextPath, "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("pdftotext failed for %s", path), err)
	}
	return string(out), nil
}

// extractPlainText reads a text-based resume directly
func (e *Extractor) extractPlainText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read resume file: %s", path), err)
	}
	return string(content), nil
}

// normalizeExtractedText joins page breaks and trims surrounding whitespace
func normalizeExtractedText(text string) string {
	text = strings.ReplaceAll(text, "\f", "\n")
	return strings.TrimSpace(text)
}
