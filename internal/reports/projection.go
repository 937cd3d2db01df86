package reports

import (
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/db/models"
)

// Projection is the client-visible shape of a report.
type Projection struct {
	ReportID       string             `json:"report_id"`
	Status         string             `json:"status"`
	Source         string             `json:"source"`
	ChannelID      string             `json:"channel_id,omitempty"`
	VideoID        string             `json:"video_id,omitempty"`
	URL            string             `json:"url,omitempty"`
	Format         string             `json:"format"`
	Language       string             `json:"language"`
	Summary        *Summary           `json:"summary,omitempty"`
	Delivery       DeliveryProjection `json:"delivery"`
	DeliveryStatus string             `json:"delivery_status"`
	CreatedAt      string             `json:"created_at"`
	CompletedAt    string             `json:"completed_at,omitempty"`
}

// DeliveryProjection mirrors the delivery block from submissions.
type DeliveryProjection struct {
	Method  string `json:"method"`
	Address string `json:"address,omitempty"`
}

// Project converts a stored row into the response shape, omitting the
// summary until the report is completed.
func Project(report *models.Report) Projection {
	p := Projection{
		ReportID:       report.ReportID,
		Status:         string(report.Status),
		Source:         string(report.Source),
		Format:         string(report.Format),
		Language:       report.Language,
		DeliveryStatus: string(report.DeliveryStatus),
		CreatedAt:      report.CreatedAt.UTC().Format(time.RFC3339),
		Delivery: DeliveryProjection{
			Method: string(report.DeliveryMethod),
		},
	}
	if report.ChannelID != nil {
		p.ChannelID = *report.ChannelID
	}
	if report.VideoID != nil {
		p.VideoID = *report.VideoID
	}
	if report.URL != nil {
		p.URL = *report.URL
	}
	if report.DeliveryAddress != nil {
		p.Delivery.Address = *report.DeliveryAddress
	}
	if report.CompletedAt != nil {
		p.CompletedAt = report.CompletedAt.UTC().Format(time.RFC3339)
	}
	if report.SummaryTitle != nil {
		summary := &Summary{
			Title:     *report.SummaryTitle,
			KeyPoints: report.SummaryPoints,
		}
		if report.WordCount != nil {
			summary.WordCount = *report.WordCount
		}
		if report.FullText != nil {
			summary.FullText = *report.FullText
		}
		p.Summary = summary
	}
	return p
}
