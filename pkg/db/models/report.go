package models

import (
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/enums"
	"github.com/cognitiondigest/digest-backend/pkg/types"
)

// Report stores one requested digest, tracked from submission to delivery.
type Report struct {
	ReportID string             `gorm:"column:report_id;type:text;primaryKey"`
	Status   enums.ReportStatus `gorm:"type:text;not null;default:'processing'"`

	Source    enums.ReportSource `gorm:"type:text;not null"`
	ChannelID *string            `gorm:"type:text"`
	VideoID   *string            `gorm:"type:text"`
	URL       *string            `gorm:"type:text"`
	Format    enums.ReportFormat `gorm:"type:text;not null"`
	Language  string             `gorm:"type:text;not null"`

	SummaryTitle  *string          `gorm:"type:text"`
	SummaryPoints types.StringList `gorm:"type:jsonb"`
	WordCount     *int             `gorm:"type:integer"`
	FullText      *string          `gorm:"type:text"`

	DeliveryMethod  enums.DeliveryMethod `gorm:"type:text;not null"`
	DeliveryAddress *string              `gorm:"type:text"`
	DeliveryStatus  enums.DeliveryStatus `gorm:"type:text;not null"`

	CreatedAt   time.Time  `gorm:"type:timestamptz;default:now()"`
	CompletedAt *time.Time `gorm:"type:timestamptz"`
}

// TableName pins the table name so GORM does not pluralize the struct name.
func (Report) TableName() string {
	return "reports"
}
