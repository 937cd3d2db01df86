package queue

import (
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/cognitiondigest/digest-backend/pkg/config"
)

func TestNewReportTask(t *testing.T) {
	task, err := newReportTask(ProcessReportTask, "rpt_20260901abc123")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != "report:process" {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	var payload ReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.ReportID != "rpt_20260901abc123" {
		t.Fatalf("unexpected report id %q", payload.ReportID)
	}
}

func TestNewReportTaskRequiresID(t *testing.T) {
	if _, err := newReportTask(EmailReportTask, ""); err == nil {
		t.Fatal("expected error for empty report id")
	}
}

func TestConnOptFromURL(t *testing.T) {
	opt, err := ConnOpt(config.RedisConfig{URL: "redis://localhost:6379/2"})
	if err != nil {
		t.Fatalf("conn opt: %v", err)
	}
	clientOpt, ok := opt.(asynq.RedisClientOpt)
	if !ok {
		t.Fatalf("unexpected conn opt type %T", opt)
	}
	if clientOpt.Addr != "localhost:6379" || clientOpt.DB != 2 {
		t.Fatalf("unexpected conn opt %+v", clientOpt)
	}
}

func TestConnOptFromAddress(t *testing.T) {
	opt, err := ConnOpt(config.RedisConfig{Address: "redis:6379", Password: "secret", DB: 1})
	if err != nil {
		t.Fatalf("conn opt: %v", err)
	}
	clientOpt, ok := opt.(asynq.RedisClientOpt)
	if !ok {
		t.Fatalf("unexpected conn opt type %T", opt)
	}
	if clientOpt.Addr != "redis:6379" || clientOpt.Password != "secret" || clientOpt.DB != 1 {
		t.Fatalf("unexpected conn opt %+v", clientOpt)
	}
}

func TestConnOptRejectsBadURL(t *testing.T) {
	if _, err := ConnOpt(config.RedisConfig{URL: "http://not-redis"}); err == nil {
		t.Fatal("expected error for non-redis scheme")
	}
}
