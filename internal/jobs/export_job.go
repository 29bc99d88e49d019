package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	exportJobName = "export"

	// SubmissionsFile and OrdersFile are the workbook names written to the
	// export directory. Each run replaces the previous files.
	SubmissionsFile = "results.xlsx"
	OrdersFile      = "orders.xlsx"
)

type ExportHandler interface {
	Handle(ctx context.Context, cmd commands.ExportCommand, w io.Writer) (int, error)
}

// ExportJob periodically writes the submissions and orders workbooks into a
// directory.
type ExportJob struct {
	submissions ExportHandler
	orders      ExportHandler
	dir         string
	spec        string
	metrics     *metrics.JobMetrics
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewExportJob creates the export job. spec is a six-field cron expression
// (seconds first). Either handler may be nil when its bot is not deployed.
func NewExportJob(
	submissions ExportHandler,
	orders ExportHandler,
	dir, spec string,
	m *metrics.JobMetrics,
	logger *slog.Logger,
) *ExportJob {
	return &ExportJob{
		submissions: submissions,
		orders:      orders,
		dir:         dir,
		spec:        spec,
		metrics:     m,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "export_job"),
	}
}

// Start schedules the export.
func (j *ExportJob) Start() error {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Export job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Export job started", "spec", j.spec, "dir", j.dir)
	return nil
}

func (j *ExportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Export job stopped")
}

// Run exports once. An empty table is skipped, not treated as a failure.
func (j *ExportJob) Run(ctx context.Context) error {
	started := time.Now()
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		j.metrics.IncFailure(exportJobName)
		return fmt.Errorf("create export dir: %w", err)
	}
	err := errors.Join(
		j.export(ctx, SubmissionsFile, j.submissions),
		j.export(ctx, OrdersFile, j.orders),
	)
	j.metrics.ObserveDuration(exportJobName, time.Since(started))
	if err != nil {
		j.metrics.IncFailure(exportJobName)
		return err
	}
	j.metrics.IncSuccess(exportJobName)
	return nil
}

// export writes into a temporary file next to the target and renames it so
// readers never see a half-written workbook.
func (j *ExportJob) export(ctx context.Context, name string, h ExportHandler) error {
	if h == nil {
		return nil
	}
	cmd, err := commands.NewExportCommand(commands.DefaultExportLimit)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(j.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	rows, err := h.Handle(ctx, cmd, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		if errors.Is(err, commands.ErrNothingToExport) {
			j.logger.DebugContext(ctx, "Nothing to export", "file", name)
			return nil
		}
		return fmt.Errorf("export %s: %w", name, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(j.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("publish %s: %w", name, err)
	}
	j.logger.InfoContext(ctx, "Export written", "file", name, "rows", rows)
	return nil
}
