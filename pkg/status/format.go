package status

import (
	"fmt"
)

// Formatter turns run results into console messages
type Formatter interface {
	// FormatSummary formats the end-of-run summary
	FormatSummary(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatSummary formats the totals of a run
func (f *DefaultFormatter) FormatSummary(s Summary) string {
	if s.Files == 0 {
		return fmt.Sprintf("nothing staged into %s", s.Destination)
	}
	return fmt.Sprintf("staged %d file(s) into %s (%d new, %d overwritten, %s)",
		s.Files, s.Destination, s.New, s.Overwritten, formatBytes(s.Bytes))
}

// FormatError formats an error message
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("staging failed: %v", err)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
