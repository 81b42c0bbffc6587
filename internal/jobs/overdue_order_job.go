package jobs

import (
	"context"
	"log/slog"
	"time"

	"yard/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueSweepSpec runs the sweep every five minutes.
const DefaultOverdueSweepSpec = "*/5 * * * *"

type failOverdueOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.FailOverdueOrdersCommand) (int, error)
}

// OverdueOrderJob marks unpaid orders older than the payment TTL as Failed.
type OverdueOrderJob struct {
	handler failOverdueOrdersHandler
	ttl     time.Duration
	batch   int
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOverdueOrderJob(
	handler failOverdueOrdersHandler,
	ttl time.Duration,
	spec string,
	logger *slog.Logger,
) *OverdueOrderJob {
	if spec == "" {
		spec = DefaultOverdueSweepSpec
	}
	return &OverdueOrderJob{
		handler: handler,
		ttl:     ttl,
		batch:   commands.DefaultOverdueBatch,
		spec:    spec,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_order_job"),
	}
}

// RunOnce sweeps batches until one comes back short and returns the number of failed orders.
func (j *OverdueOrderJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewFailOverdueOrdersCommand(j.ttl, j.batch)
	if err != nil {
		return 0, err
	}

	total := 0
	for {
		n, err := j.handler.Handle(ctx, cmd)
		total += n
		if err != nil {
			return total, err
		}
		if n < j.batch {
			return total, nil
		}
	}
}

// Start schedules the sweep.
func (j *OverdueOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		n, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue order sweep failed", "error", err, "failed_orders", n)
			return
		}
		if n > 0 {
			j.logger.InfoContext(ctx, "Overdue orders failed", "count", n)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue order job started", "spec", j.spec, "payment_ttl", j.ttl)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *OverdueOrderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue order job stopped")
}
