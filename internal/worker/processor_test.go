package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/cognitiondigest/digest-backend/internal/delivery"
	"github.com/cognitiondigest/digest-backend/internal/queue"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	"github.com/cognitiondigest/digest-backend/pkg/db/models"
	"github.com/cognitiondigest/digest-backend/pkg/enums"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/mailer"
	"github.com/cognitiondigest/digest-backend/pkg/metrics"
)

type fakeService struct {
	completed []string
	failed    []string
	err       error
}

func (f *fakeService) Create(_ context.Context, _ reports.CreateReportInput) (*reports.CreateResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeService) Complete(_ context.Context, reportID string) error {
	if f.err != nil {
		return f.err
	}
	f.completed = append(f.completed, reportID)
	return nil
}

func (f *fakeService) Fail(_ context.Context, reportID string) error {
	f.failed = append(f.failed, reportID)
	return nil
}

func (f *fakeService) Get(_ context.Context, _ string) (*models.Report, error) {
	return nil, nil
}

type fakeRepo struct {
	rows map[string]*models.Report
}

func (f *fakeRepo) Create(_ context.Context, report *models.Report) error {
	f.rows[report.ReportID] = report
	return nil
}

func (f *fakeRepo) Get(_ context.Context, reportID string) (*models.Report, error) {
	return f.rows[reportID], nil
}

func (f *fakeRepo) CompleteIfProcessing(_ context.Context, _ string, _ reports.Summary, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeRepo) MarkFailed(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) SetDeliveryStatus(_ context.Context, reportID string, from, to enums.DeliveryStatus) (bool, error) {
	row, ok := f.rows[reportID]
	if !ok || row.DeliveryStatus != from {
		return false, nil
	}
	row.DeliveryStatus = to
	return true, nil
}

func (f *fakeRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeMailer struct {
	sent int
}

func (f *fakeMailer) SendDigest(_ context.Context, _ string, _ mailer.DigestEmail) error {
	f.sent++
	return nil
}

func (f *fakeMailer) SendTest(_ context.Context, _ string) error {
	f.sent++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "worker-test", Level: zerolog.Disabled, Output: io.Discard})
}

func newProcessor(t *testing.T, service reports.Service, repo reports.Repository) *Processor {
	t.Helper()
	email, err := delivery.NewEmailService(repo, &fakeMailer{}, testLogger())
	if err != nil {
		t.Fatalf("new email service: %v", err)
	}
	p, err := NewProcessor(service, email, metrics.NewTaskMetrics(nil), testLogger())
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	return p
}

func TestHandleProcessCompletesReport(t *testing.T) {
	svc := &fakeService{}
	p := newProcessor(t, svc, &fakeRepo{rows: map[string]*models.Report{}})

	task := asynq.NewTask(queue.ProcessReportTask, []byte(`{"report_id":"rpt_20260901abc123"}`))
	if err := p.handleProcess(context.Background(), task); err != nil {
		t.Fatalf("handle process: %v", err)
	}
	if len(svc.completed) != 1 || svc.completed[0] != "rpt_20260901abc123" {
		t.Fatalf("unexpected completions %v", svc.completed)
	}
}

func TestHandleProcessRejectsBadPayload(t *testing.T) {
	p := newProcessor(t, &fakeService{}, &fakeRepo{rows: map[string]*models.Report{}})

	for _, payload := range []string{`not json`, `{}`} {
		task := asynq.NewTask(queue.ProcessReportTask, []byte(payload))
		if err := p.handleProcess(context.Background(), task); err == nil {
			t.Fatalf("expected error for payload %q", payload)
		}
	}
}

func TestHandleEmailDeliversReport(t *testing.T) {
	address := "user@example.com"
	title := "AI Agent Revolution - Cognitive Era"
	repo := &fakeRepo{rows: map[string]*models.Report{
		"rpt_20260901abc123": {
			ReportID:        "rpt_20260901abc123",
			Status:          enums.ReportStatusCompleted,
			Source:          enums.ReportSourceYouTube,
			Language:        "en",
			SummaryTitle:    &title,
			DeliveryMethod:  enums.DeliveryMethodEmail,
			DeliveryAddress: &address,
			DeliveryStatus:  enums.DeliveryStatusQueued,
		},
	}}
	p := newProcessor(t, &fakeService{}, repo)

	task := asynq.NewTask(queue.EmailReportTask, []byte(`{"report_id":"rpt_20260901abc123"}`))
	if err := p.handleEmail(context.Background(), task); err != nil {
		t.Fatalf("handle email: %v", err)
	}
	if repo.rows["rpt_20260901abc123"].DeliveryStatus != enums.DeliveryStatusSent {
		t.Fatalf("expected sent, got %s", repo.rows["rpt_20260901abc123"].DeliveryStatus)
	}
}

func TestInstrumentPropagatesHandlerError(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	p := newProcessor(t, svc, &fakeRepo{rows: map[string]*models.Report{}})

	handler := p.instrument(queue.ProcessReportTask, p.handleProcess)
	task := asynq.NewTask(queue.ProcessReportTask, []byte(`{"report_id":"rpt_20260901abc123"}`))
	if err := handler(context.Background(), task); err == nil {
		t.Fatal("expected handler error to propagate for retry")
	}
}

func TestHandlerRegistersBothTasks(t *testing.T) {
	p := newProcessor(t, &fakeService{}, &fakeRepo{rows: map[string]*models.Report{}})
	mux := p.Handler()

	task := asynq.NewTask(queue.ProcessReportTask, []byte(`{"report_id":"rpt_20260901abc123"}`))
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("mux process task: %v", err)
	}

	task = asynq.NewTask(queue.EmailReportTask, []byte(`{"report_id":"rpt_20260901zzzzzz"}`))
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("mux email task: %v", err)
	}
}
