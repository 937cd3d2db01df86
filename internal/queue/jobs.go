package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/cognitiondigest/digest-backend/pkg/config"
)

const (
	// ProcessReportTask is scheduled each time a report is submitted.
	ProcessReportTask = "report:process"
	// EmailReportTask is scheduled when a completed report is delivered by email.
	EmailReportTask = "report:email"
)

// ReportPayload is serialized into the task payload so the worker knows
// which report to act on.
type ReportPayload struct {
	ReportID string `json:"report_id"`
}

// ConnOpt builds the asynq connection options from the redis config.
func ConnOpt(cfg config.RedisConfig) (asynq.RedisConnOpt, error) {
	if cfg.URL != "" {
		opt, err := asynq.ParseRedisURI(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opt, nil
	}
	return asynq.RedisClientOpt{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// Client enqueues report tasks onto the durable queue.
type Client struct {
	client *asynq.Client
	cfg    config.QueueConfig
}

// NewClient connects an enqueue-only asynq client.
func NewClient(redisCfg config.RedisConfig, queueCfg config.QueueConfig) (*Client, error) {
	opt, err := ConnOpt(redisCfg)
	if err != nil {
		return nil, err
	}
	return &Client{client: asynq.NewClient(opt), cfg: queueCfg}, nil
}

// EnqueueProcess enqueues the background completion task for a report.
func (c *Client) EnqueueProcess(ctx context.Context, reportID string) error {
	task, err := newReportTask(ProcessReportTask, reportID)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(c.cfg.ProcessMaxRetry)); err != nil {
		return fmt.Errorf("enqueue %s: %w", ProcessReportTask, err)
	}
	return nil
}

// EnqueueEmail enqueues the email delivery task for a completed report.
func (c *Client) EnqueueEmail(ctx context.Context, reportID string) error {
	task, err := newReportTask(EmailReportTask, reportID)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(c.cfg.EmailMaxRetry)); err != nil {
		return fmt.Errorf("enqueue %s: %w", EmailReportTask, err)
	}
	return nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}

func newReportTask(taskType, reportID string) (*asynq.Task, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report id required for %s", taskType)
	}
	data, err := json.Marshal(ReportPayload{ReportID: reportID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(taskType, data), nil
}
