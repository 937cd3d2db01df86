package delivery

import (
	"context"

	"github.com/cognitiondigest/digest-backend/internal/reports"
	"github.com/cognitiondigest/digest-backend/pkg/db/models"
	"github.com/cognitiondigest/digest-backend/pkg/enums"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/mailer"
)

// EmailService performs the actual email delivery for a completed report and
// records the outcome on the row.
type EmailService struct {
	repo   reports.Repository
	mailer mailer.Mailer
	log    *logger.Logger
}

// NewEmailService wires email delivery dependencies.
func NewEmailService(repo reports.Repository, m mailer.Mailer, log *logger.Logger) (*EmailService, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reports repository required")
	}
	if m == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &EmailService{repo: repo, mailer: m, log: log}, nil
}

// Deliver sends the digest email for reportID. Transport failures are
// recorded as delivery_status=failed and logged, never propagated; duplicate
// task deliveries lose the conditional status update and no-op.
func (s *EmailService) Deliver(ctx context.Context, reportID string) error {
	ctx = s.log.WithReportID(ctx, reportID)

	report, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	if report == nil {
		s.log.Warn(ctx, "report vanished before email delivery, skipping")
		return nil
	}
	if report.DeliveryMethod != enums.DeliveryMethodEmail || report.DeliveryAddress == nil {
		s.log.Warn(ctx, "report is not an email delivery, skipping")
		return nil
	}
	if report.DeliveryStatus != enums.DeliveryStatusQueued {
		s.log.Info(ctx, "delivery already settled, skipping duplicate task")
		return nil
	}

	if err := s.mailer.SendDigest(ctx, *report.DeliveryAddress, digestEmail(report)); err != nil {
		s.log.Error(ctx, "digest email send failed", err)
		if _, dsErr := s.repo.SetDeliveryStatus(ctx, reportID, enums.DeliveryStatusQueued, enums.DeliveryStatusFailed); dsErr != nil {
			s.log.Error(ctx, "recording failed delivery status", dsErr)
			return pkgerrors.Wrap(pkgerrors.CodeDependency, dsErr, "record delivery failure")
		}
		return nil
	}

	won, err := s.repo.SetDeliveryStatus(ctx, reportID, enums.DeliveryStatusQueued, enums.DeliveryStatusSent)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record delivery success")
	}
	if !won {
		s.log.Info(ctx, "delivery status already settled by a concurrent task")
	}
	return nil
}

func digestEmail(report *models.Report) mailer.DigestEmail {
	email := mailer.DigestEmail{
		Source:   string(report.Source),
		Language: report.Language,
		ReportID: report.ReportID,
	}
	if report.SummaryTitle != nil {
		email.Title = *report.SummaryTitle
	}
	email.KeyPoints = report.SummaryPoints
	if report.WordCount != nil {
		email.WordCount = *report.WordCount
	}
	if report.FullText != nil {
		email.FullText = *report.FullText
	}
	if report.VideoID != nil {
		email.VideoID = *report.VideoID
	}
	if report.ChannelID != nil {
		email.ChannelID = *report.ChannelID
	}
	if report.URL != nil {
		email.URL = *report.URL
	}
	return email
}
