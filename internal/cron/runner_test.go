package cronrunner

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAdd_EmptySpecIsDisabled(t *testing.T) {
	r := New(zap.NewNop(), context.Background(), 0)
	id, err := r.Add("noop", "  ", func(context.Context) error { return nil })
	if err != nil || id != 0 {
		t.Fatalf("id=%d err=%v", id, err)
	}
	if len(r.cron.Entries()) != 0 {
		t.Fatalf("entries=%d want 0", len(r.cron.Entries()))
	}
}

func TestAdd_InvalidSpec(t *testing.T) {
	r := New(nil, nil, 0)
	if _, err := r.Add("bad", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRun_AppliesTimeoutAndLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := New(zap.New(core), context.Background(), 20*time.Millisecond)

	var sawDeadline bool
	r.run("slow", func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return errors.New("boom")
	})
	if !sawDeadline {
		t.Fatalf("job context has no deadline")
	}
	if logs.FilterMessage("cron job failed").Len() != 1 {
		t.Fatalf("logs=%v", logs.All())
	}
}
