package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

const defaultRetentionMaxAge = 30 * 24 * time.Hour

type reportRetentionRepo interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReportRetentionJobParams configure the report retention job.
type ReportRetentionJobParams struct {
	Logger     *logger.Logger
	Repository reportRetentionRepo
	MaxAge     time.Duration
}

// NewReportRetentionJob builds the job that reaps terminal reports older
// than the retention window. Processing reports are never touched.
func NewReportRetentionJob(params ReportRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultRetentionMaxAge
	}
	return &reportRetentionJob{
		logg:   params.Logger,
		repo:   params.Repository,
		maxAge: maxAge,
		now:    time.Now,
	}, nil
}

type reportRetentionJob struct {
	logg   *logger.Logger
	repo   reportRetentionRepo
	maxAge time.Duration
	now    func() time.Time
}

func (j *reportRetentionJob) Name() string { return "report-retention" }

func (j *reportRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.maxAge)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("report retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"max_age":      j.maxAge.String(),
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "report retention cleanup complete")
	return nil
}
