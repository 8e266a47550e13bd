package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateOutputFormat validates format against configured supported formats.
// An empty supported list means no restriction.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 || slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format %q (supported: %s)",
		format, strings.Join(supportedFormats, ", "))
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
