package delivery

import (
	"context"
	"fmt"

	"github.com/cognitiondigest/digest-backend/internal/reports"
	"github.com/cognitiondigest/digest-backend/pkg/db/models"
	"github.com/cognitiondigest/digest-backend/pkg/enums"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

// EmailEnqueuer schedules the durable email delivery task.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, reportID string) error
}

// Dispatcher routes a completed report to its delivery method.
type Dispatcher struct {
	enqueuer EmailEnqueuer
	log      *logger.Logger
}

// NewDispatcher wires delivery dependencies.
func NewDispatcher(enqueuer EmailEnqueuer, log *logger.Logger) (*Dispatcher, error) {
	if enqueuer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "email enqueuer required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Dispatcher{enqueuer: enqueuer, log: log}, nil
}

// Dispatch routes by delivery method. Email is handed to the durable queue;
// webhook posting is not wired to a transport yet and stays queued.
func (d *Dispatcher) Dispatch(ctx context.Context, report *models.Report, _ reports.Summary) error {
	ctx = d.log.WithReportID(ctx, report.ReportID)

	switch report.DeliveryMethod {
	case enums.DeliveryMethodEmail:
		if err := d.enqueuer.EnqueueEmail(ctx, report.ReportID); err != nil {
			return fmt.Errorf("enqueue email delivery: %w", err)
		}
		d.log.Info(ctx, "email delivery enqueued")
		return nil

	case enums.DeliveryMethodWebhook:
		d.log.Warn(ctx, "webhook delivery not implemented, leaving delivery queued")
		return nil

	case enums.DeliveryMethodNone:
		return nil

	default:
		return fmt.Errorf("unknown delivery method %q", report.DeliveryMethod)
	}
}
