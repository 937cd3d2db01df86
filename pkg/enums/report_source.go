package enums

import "fmt"

// ReportSource identifies the kind of content a digest is built from.
type ReportSource string

const (
	ReportSourceYouTube ReportSource = "youtube"
	ReportSourcePodcast ReportSource = "podcast"
	ReportSourceArticle ReportSource = "article"
)

var validReportSources = []ReportSource{
	ReportSourceYouTube,
	ReportSourcePodcast,
	ReportSourceArticle,
}

// IsValid checks whether the given source matches the canonical enum.
func (s ReportSource) IsValid() bool {
	for _, candidate := range validReportSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReportSource converts raw strings into ReportSource.
func ParseReportSource(value string) (ReportSource, error) {
	for _, candidate := range validReportSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report source %q", value)
}
