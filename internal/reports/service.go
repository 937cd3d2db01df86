package reports

import (
	"context"
	"strings"
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/db/models"
	"github.com/cognitiondigest/digest-backend/pkg/enums"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/types"
)

// Enqueuer schedules the background completion task for a new report.
type Enqueuer interface {
	EnqueueProcess(ctx context.Context, reportID string) error
}

// Dispatcher routes a completed report to its delivery method.
type Dispatcher interface {
	Dispatch(ctx context.Context, report *models.Report, summary Summary) error
}

// Service drives the report lifecycle: processing → {completed, failed}.
type Service interface {
	Create(ctx context.Context, input CreateReportInput) (*CreateResult, error)
	Complete(ctx context.Context, reportID string) error
	Fail(ctx context.Context, reportID string) error
	Get(ctx context.Context, reportID string) (*models.Report, error)
}

// CreateReportInput is the validated shape of a report submission.
type CreateReportInput struct {
	Source    string
	ChannelID string
	VideoID   string
	URL       string
	Format    string
	Language  string
	Delivery  DeliveryInput
}

// DeliveryInput selects how the finished digest is transmitted.
type DeliveryInput struct {
	Method     string
	Address    string
	WebhookURL string
}

// CreateResult is the immediate projection returned to the submitter.
type CreateResult struct {
	ReportID       string
	DeliveryStatus enums.DeliveryStatus
	CreatedAt      time.Time
}

type service struct {
	repo       Repository
	summarizer Summarizer
	enqueuer   Enqueuer
	dispatcher Dispatcher
	log        *logger.Logger
	now        func() time.Time
}

// NewService wires report lifecycle dependencies.
func NewService(repo Repository, summarizer Summarizer, enqueuer Enqueuer, dispatcher Dispatcher, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reports repository required")
	}
	if summarizer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "summarizer required")
	}
	if enqueuer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "task enqueuer required")
	}
	if dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "delivery dispatcher required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:       repo,
		summarizer: summarizer,
		enqueuer:   enqueuer,
		dispatcher: dispatcher,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateReportInput) (*CreateResult, error) {
	report, err := buildReport(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	reportID, err := NewReportID(now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate report id")
	}
	report.ReportID = reportID
	report.CreatedAt = now

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist report")
	}

	if err := s.enqueuer.EnqueueProcess(ctx, reportID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "enqueue processing task")
	}

	return &CreateResult{
		ReportID:       reportID,
		DeliveryStatus: report.DeliveryStatus,
		CreatedAt:      now,
	}, nil
}

// Complete runs the processing step for a report. Safe under duplicate task
// deliveries: only the transition winner writes the summary and dispatches.
func (s *service) Complete(ctx context.Context, reportID string) error {
	ctx = s.log.WithReportID(ctx, reportID)

	report, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	if report == nil {
		s.log.Warn(ctx, "report vanished before completion, skipping")
		return nil
	}

	summary, err := s.summarizer.Summarize(ctx, report)
	if err != nil {
		if _, failErr := s.repo.MarkFailed(ctx, reportID); failErr != nil {
			s.log.Error(ctx, "marking report failed after summarizer error", failErr)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize report")
	}

	completedAt := s.now()
	won, err := s.repo.CompleteIfProcessing(ctx, reportID, summary, completedAt)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete report")
	}
	if !won {
		s.log.Info(ctx, "report already terminal, skipping duplicate completion")
		return nil
	}

	title := summary.Title
	points := summary.KeyPoints
	wordCount := summary.WordCount
	fullText := summary.FullText
	report.Status = enums.ReportStatusCompleted
	report.SummaryTitle = &title
	report.SummaryPoints = types.StringList(points)
	report.WordCount = &wordCount
	report.FullText = &fullText
	report.CompletedAt = &completedAt

	if err := s.dispatcher.Dispatch(ctx, report, summary); err != nil {
		s.log.Error(ctx, "delivery dispatch failed", err)
		if _, dsErr := s.repo.SetDeliveryStatus(ctx, reportID, enums.DeliveryStatusQueued, enums.DeliveryStatusFailed); dsErr != nil {
			s.log.Error(ctx, "recording failed delivery status", dsErr)
		}
	}
	return nil
}

// Fail transitions a processing report to failed. Terminal reports are
// left untouched.
func (s *service) Fail(ctx context.Context, reportID string) error {
	won, err := s.repo.MarkFailed(ctx, reportID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark report failed")
	}
	if !won {
		s.log.Info(s.log.WithReportID(ctx, reportID), "report already terminal, skipping fail transition")
	}
	return nil
}

func (s *service) Get(ctx context.Context, reportID string) (*models.Report, error) {
	if strings.TrimSpace(reportID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report id required")
	}
	report, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	return report, nil
}

// buildReport validates the submission shape and derives the initial row.
// Nothing is persisted until validation passes.
func buildReport(input CreateReportInput) (*models.Report, error) {
	source, err := enums.ParseReportSource(strings.TrimSpace(input.Source))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid source: must be youtube, podcast, or article")
	}

	format, err := enums.ParseReportFormat(strings.TrimSpace(input.Format))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid format: must be summary, detailed, or bullet_points")
	}

	language := strings.TrimSpace(input.Language)
	if language == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "language is required")
	}

	method, err := enums.ParseDeliveryMethod(strings.TrimSpace(input.Delivery.Method))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery method: must be email, webhook, or none")
	}

	videoID := strings.TrimSpace(input.VideoID)
	url := strings.TrimSpace(input.URL)
	if source == enums.ReportSourceYouTube && videoID == "" && url == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "youtube source requires video_id or url")
	}

	address := strings.TrimSpace(input.Delivery.Address)
	webhookURL := strings.TrimSpace(input.Delivery.WebhookURL)
	switch method {
	case enums.DeliveryMethodEmail:
		if address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email delivery requires an address")
		}
	case enums.DeliveryMethodWebhook:
		// address wins when both are provided
		if address == "" {
			address = webhookURL
		}
		if address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "webhook delivery requires a webhook_url")
		}
	}

	report := &models.Report{
		Status:         enums.ReportStatusProcessing,
		Source:         source,
		Format:         format,
		Language:       language,
		DeliveryMethod: method,
		DeliveryStatus: method.InitialDeliveryStatus(),
	}
	if channelID := strings.TrimSpace(input.ChannelID); channelID != "" {
		report.ChannelID = &channelID
	}
	if videoID != "" {
		report.VideoID = &videoID
	}
	if url != "" {
		report.URL = &url
	}
	if method != enums.DeliveryMethodNone {
		report.DeliveryAddress = &address
	}
	return report, nil
}
