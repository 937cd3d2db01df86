package reports

import (
	"testing"
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/db/models"
	"github.com/cognitiondigest/digest-backend/pkg/enums"
)

func TestProjectProcessingReportOmitsSummary(t *testing.T) {
	videoID := "abc123"
	address := "user@example.com"
	report := &models.Report{
		ReportID:        "rpt_20260901abc123",
		Status:          enums.ReportStatusProcessing,
		Source:          enums.ReportSourceYouTube,
		VideoID:         &videoID,
		Format:          enums.ReportFormatSummary,
		Language:        "en",
		DeliveryMethod:  enums.DeliveryMethodEmail,
		DeliveryAddress: &address,
		DeliveryStatus:  enums.DeliveryStatusQueued,
		CreatedAt:       time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}

	p := Project(report)
	if p.Summary != nil {
		t.Fatal("processing report must not expose a summary")
	}
	if p.CompletedAt != "" {
		t.Fatal("processing report must not expose completed_at")
	}
	if p.CreatedAt != "2026-09-01T08:00:00Z" {
		t.Fatalf("unexpected created_at %q", p.CreatedAt)
	}
	if p.Delivery.Method != "email" || p.Delivery.Address != "user@example.com" {
		t.Fatalf("unexpected delivery block %+v", p.Delivery)
	}
	if p.DeliveryStatus != "queued" {
		t.Fatalf("unexpected delivery status %q", p.DeliveryStatus)
	}
}

func TestProjectCompletedReportIncludesSummary(t *testing.T) {
	title := "AI Agent Revolution - Cognitive Era"
	wordCount := 523
	fullText := "This is a placeholder for the full summary text..."
	completedAt := time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC)
	report := &models.Report{
		ReportID:       "rpt_20260901abc123",
		Status:         enums.ReportStatusCompleted,
		Source:         enums.ReportSourceArticle,
		Format:         enums.ReportFormatSummary,
		Language:       "en",
		SummaryTitle:   &title,
		SummaryPoints:  []string{"LLMs are redefining reasoning"},
		WordCount:      &wordCount,
		FullText:       &fullText,
		DeliveryMethod: enums.DeliveryMethodNone,
		DeliveryStatus: enums.DeliveryStatusNone,
		CreatedAt:      time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		CompletedAt:    &completedAt,
	}

	p := Project(report)
	if p.Summary == nil {
		t.Fatal("completed report must expose the summary")
	}
	if p.Summary.Title != title || p.Summary.WordCount != 523 {
		t.Fatalf("unexpected summary %+v", p.Summary)
	}
	if p.CompletedAt != "2026-09-01T08:05:00Z" {
		t.Fatalf("unexpected completed_at %q", p.CompletedAt)
	}
}

func TestNewReportIDShape(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	id, err := NewReportID(now)
	if err != nil {
		t.Fatalf("new report id: %v", err)
	}
	if len(id) != len("rpt_20260901")+6 {
		t.Fatalf("unexpected id length for %q", id)
	}
	if id[:len("rpt_20260901")] != "rpt_20260901" {
		t.Fatalf("unexpected prefix in %q", id)
	}
	for _, r := range id[len("rpt_20260901"):] {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			t.Fatalf("unexpected suffix character %q in %q", r, id)
		}
	}
}
