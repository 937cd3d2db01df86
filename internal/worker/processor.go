package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/cognitiondigest/digest-backend/internal/delivery"
	"github.com/cognitiondigest/digest-backend/internal/queue"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/metrics"
)

// Processor is plugged into the asynq worker loop.
type Processor struct {
	service reports.Service
	email   *delivery.EmailService
	metrics *metrics.TaskMetrics
	log     *logger.Logger
}

// NewProcessor constructs a worker processor.
func NewProcessor(service reports.Service, email *delivery.EmailService, taskMetrics *metrics.TaskMetrics, log *logger.Logger) (*Processor, error) {
	if service == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reports service required")
	}
	if email == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "email delivery service required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Processor{service: service, email: email, metrics: taskMetrics, log: log}, nil
}

// Handler registers the report task handlers.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.ProcessReportTask, p.instrument(queue.ProcessReportTask, p.handleProcess))
	mux.HandleFunc(queue.EmailReportTask, p.instrument(queue.EmailReportTask, p.handleEmail))
	return mux
}

func (p *Processor) handleProcess(ctx context.Context, task *asynq.Task) error {
	payload, err := decodePayload(task)
	if err != nil {
		return err
	}
	return p.service.Complete(ctx, payload.ReportID)
}

func (p *Processor) handleEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := decodePayload(task)
	if err != nil {
		return err
	}
	return p.email.Deliver(ctx, payload.ReportID)
}

func (p *Processor) instrument(taskType string, handler asynq.HandlerFunc) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ctx = p.log.WithTask(ctx, taskType)
		start := time.Now()

		err := handler(ctx, task)
		p.metrics.ObserveDuration(taskType, time.Since(start))
		if err != nil {
			p.metrics.IncFailure(taskType)
			p.log.Error(ctx, "task failed", err)
			return err
		}
		p.metrics.IncSuccess(taskType)
		return nil
	}
}

func decodePayload(task *asynq.Task) (queue.ReportPayload, error) {
	var payload queue.ReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("decode payload: %w", err)
	}
	if payload.ReportID == "" {
		return payload, fmt.Errorf("payload missing report_id")
	}
	return payload, nil
}
