package enums

import "fmt"

// ReportFormat selects the requested digest presentation.
// Stored with the report but not yet consumed by processing.
type ReportFormat string

const (
	ReportFormatSummary      ReportFormat = "summary"
	ReportFormatDetailed     ReportFormat = "detailed"
	ReportFormatBulletPoints ReportFormat = "bullet_points"
)

var validReportFormats = []ReportFormat{
	ReportFormatSummary,
	ReportFormatDetailed,
	ReportFormatBulletPoints,
}

// IsValid checks whether the given format matches the canonical enum.
func (f ReportFormat) IsValid() bool {
	for _, candidate := range validReportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseReportFormat converts raw strings into ReportFormat.
func ParseReportFormat(value string) (ReportFormat, error) {
	for _, candidate := range validReportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report format %q", value)
}
