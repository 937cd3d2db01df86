package reports

import (
	"context"

	"github.com/cognitiondigest/digest-backend/pkg/db/models"
)

// Summary is the produced digest content written onto a completed report.
type Summary struct {
	Title     string   `json:"title"`
	KeyPoints []string `json:"key_points"`
	WordCount int      `json:"word_count"`
	FullText  string   `json:"full_text,omitempty"`
}

// Summarizer produces a summary for a report. The processing pipeline is a
// strategy so a real implementation can replace the placeholder without
// touching the lifecycle service.
type Summarizer interface {
	Summarize(ctx context.Context, report *models.Report) (Summary, error)
}

// StaticSummarizer returns the fixed placeholder content the API currently
// ships. The literals are a contract; clients key off them.
type StaticSummarizer struct{}

// NewStaticSummarizer returns the placeholder summarizer.
func NewStaticSummarizer() StaticSummarizer {
	return StaticSummarizer{}
}

func (StaticSummarizer) Summarize(_ context.Context, _ *models.Report) (Summary, error) {
	return Summary{
		Title: "AI Agent Revolution - Cognitive Era",
		KeyPoints: []string{
			"LLMs are redefining reasoning",
			"Agents are the next paradigm",
			"Cognitive architectures enable complex workflows",
		},
		WordCount: 523,
		FullText:  "This is a placeholder for the full summary text...",
	}, nil
}
