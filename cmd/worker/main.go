package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/officemate/office-mate-backend/internal/bootstrap"
	"github.com/officemate/office-mate-backend/internal/config"
	"github.com/officemate/office-mate-backend/internal/core/domain"
	"github.com/officemate/office-mate-backend/internal/observability/logging"
	"github.com/officemate/office-mate-backend/internal/observability/metrics"
)

const service = "worker"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(service)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	go runReminderScans(ctx, app, workerMetrics, cfg, logger)

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		observeCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Second)
		defer cancel()

		doc, err := app.DocRepo.GetByID(observeCtx, documentID)
		workerMetrics.RecordIngestEvent(service, err)
		if err != nil {
			return err
		}

		workerMetrics.ObserveIngestLag(service, time.Since(doc.CreatedAt))
		logger.Info("document ingested",
			"document_id", doc.ID,
			"category", doc.Category,
			"tags", doc.Tags,
		)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

// runReminderScans periodically surfaces overdue open tasks in the logs
// so operators notice them without polling the API.
func runReminderScans(
	ctx context.Context,
	app *bootstrap.App,
	workerMetrics *metrics.WorkerMetrics,
	cfg config.Config,
	logger *slog.Logger,
) {
	interval := time.Duration(cfg.ReminderIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		overdue, err := app.TaskRepo.List(scanCtx, domain.TaskFilter{Overdue: true})
		cancel()
		workerMetrics.RecordReminderScan(service, len(overdue), err)
		if err != nil {
			logger.Warn("reminder scan failed", "error", err)
			continue
		}

		for _, task := range overdue {
			logger.Warn("task overdue",
				"task_id", task.ID,
				"title", task.Title,
				"priority", task.Priority,
				"due_date", task.DueDate,
			)
		}

		if cfg.ReminderUpcomingDays <= 0 {
			continue
		}
		days := cfg.ReminderUpcomingDays
		scanCtx, cancel = context.WithTimeout(ctx, 30*time.Second)
		upcoming, err := app.TaskRepo.List(scanCtx, domain.TaskFilter{UpcomingDays: &days})
		cancel()
		if err != nil {
			logger.Warn("upcoming scan failed", "error", err)
			continue
		}
		for _, task := range upcoming {
			if task.Status == domain.TaskStatusDone {
				continue
			}
			logger.Info("task due soon",
				"task_id", task.ID,
				"title", task.Title,
				"due_date", task.DueDate,
			)
		}
	}
}
