package reports

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cognitiondigest/digest-backend/pkg/db/models"
	"github.com/cognitiondigest/digest-backend/pkg/enums"
	"github.com/cognitiondigest/digest-backend/pkg/types"
)

// Repository exposes persistence helpers for reports. Status and delivery
// transitions are conditional single-statement updates so duplicate task
// deliveries collapse into no-ops.
type Repository interface {
	Create(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, reportID string) (*models.Report, error)
	CompleteIfProcessing(ctx context.Context, reportID string, summary Summary, completedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, reportID string) (bool, error)
	SetDeliveryStatus(ctx context.Context, reportID string, from, to enums.DeliveryStatus) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repositoryImpl) Get(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repositoryImpl) CompleteIfProcessing(ctx context.Context, reportID string, summary Summary, completedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("report_id = ? AND status = ?", reportID, enums.ReportStatusProcessing).
		Updates(map[string]any{
			"status":         enums.ReportStatusCompleted,
			"summary_title":  summary.Title,
			"summary_points": types.StringList(summary.KeyPoints),
			"word_count":     summary.WordCount,
			"full_text":      summary.FullText,
			"completed_at":   completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) MarkFailed(ctx context.Context, reportID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("report_id = ? AND status = ?", reportID, enums.ReportStatusProcessing).
		UpdateColumn("status", enums.ReportStatusFailed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) SetDeliveryStatus(ctx context.Context, reportID string, from, to enums.DeliveryStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("report_id = ? AND delivery_status = ?", reportID, from).
		UpdateColumn("delivery_status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ? AND status IN ?", cutoff, []enums.ReportStatus{
			enums.ReportStatusCompleted,
			enums.ReportStatusFailed,
		}).
		Delete(&models.Report{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
