package cronrunner

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one scheduled unit of work. A returned error is logged; the
// schedule keeps running.
type Job func(ctx context.Context) error

type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
	timeout time.Duration
}

// New builds a runner whose jobs inherit baseCtx, so cancelling it at
// shutdown cancels in-flight jobs. Each run is bounded by timeout when > 0.
func New(logger *zap.Logger, baseCtx context.Context, timeout time.Duration) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger:  logger,
		baseCtx: baseCtx,
		timeout: timeout,
	}
}

// Add schedules job under name. An empty spec leaves the job disabled.
func (r *Runner) Add(name, spec string, job Job) (cron.EntryID, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		r.logger.Info("cron job disabled", zap.String("job", name))
		return 0, nil
	}
	id, err := r.cron.AddFunc(spec, func() { r.run(name, job) })
	if err != nil {
		return 0, err
	}
	r.logger.Info("cron job scheduled", zap.String("job", name), zap.String("spec", spec))
	return id, nil
}

func (r *Runner) run(name string, job Job) {
	ctx := r.baseCtx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	started := time.Now()
	err := job(ctx)
	fields := []zap.Field{zap.String("job", name), zap.Duration("took", time.Since(started))}
	if err != nil {
		r.logger.Warn("cron job failed", append(fields, zap.Error(err))...)
		return
	}
	r.logger.Info("cron job done", fields...)
}

func (r *Runner) Start() {
	r.logger.Info("cron started")
	r.cron.Start()
}

// Stop waits for running jobs to return.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("cron stopped")
}
