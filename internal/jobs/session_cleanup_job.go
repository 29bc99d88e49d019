package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	sessionCleanupJobName = "session_cleanup"
	sessionCleanupSpec    = "0 */10 * * * *"
)

type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionCleanupJob removes abandoned conversation sessions every ten
// minutes. Only the relational store needs it; Redis expires keys itself.
type SessionCleanupJob struct {
	store   ExpiredSessionDeleter
	metrics *metrics.JobMetrics
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewSessionCleanupJob(store ExpiredSessionDeleter, m *metrics.JobMetrics, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		store:   store,
		metrics: m,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_cleanup_job"),
	}
}

func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc(sessionCleanupSpec, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every 10 minutes)")
	return nil
}

func (j *SessionCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	started := time.Now()
	n, err := j.store.DeleteExpired(ctx)
	j.metrics.ObserveDuration(sessionCleanupJobName, time.Since(started))
	if err != nil {
		j.metrics.IncFailure(sessionCleanupJobName)
		return err
	}
	j.metrics.IncSuccess(sessionCleanupJobName)
	if n > 0 {
		j.logger.InfoContext(ctx, "Expired sessions removed", "count", n)
	}
	return nil
}
