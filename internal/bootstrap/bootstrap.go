package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officemate/office-mate-backend/internal/config"
	"github.com/officemate/office-mate-backend/internal/core/ports"
	"github.com/officemate/office-mate-backend/internal/core/usecase"
	"github.com/officemate/office-mate-backend/internal/infrastructure/classifier"
	"github.com/officemate/office-mate-backend/internal/infrastructure/export"
	"github.com/officemate/office-mate-backend/internal/infrastructure/extractor/doctext"
	natsqueue "github.com/officemate/office-mate-backend/internal/infrastructure/queue/nats"
	"github.com/officemate/office-mate-backend/internal/infrastructure/repository/postgres"
	"github.com/officemate/office-mate-backend/internal/infrastructure/resilience"
	"github.com/officemate/office-mate-backend/internal/infrastructure/storage/localfs"
	"github.com/officemate/office-mate-backend/internal/infrastructure/tagging"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	DocRepo  ports.DocumentRepository
	TaskRepo ports.TaskRepository

	IngestUC ports.DocumentIngestor
	SearchUC ports.DocumentSearcher
	TaskUC   ports.TaskService
	Exporter ports.DocumentExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	docRepo := postgres.NewDocumentRepository(db)
	if err := docRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	taskRepo := postgres.NewTaskRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	extractor := doctext.NewExtractor(doctext.Config{
		Tesseract:     cfg.TesseractBin,
		TesseractLang: cfg.TesseractLang,
		OCRTimeout:    time.Duration(cfg.OCRTimeoutSeconds) * time.Second,
	}, logger)

	categoryClassifier := classifier.New(cfg.ClassifierModelPath)
	tagger := tagging.NewTagger()

	ingestUC := usecase.NewIngestDocumentUseCase(
		docRepo, storage, queue, extractor, categoryClassifier, tagger, logger)
	searchUC := usecase.NewSearchDocumentsUseCase(docRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo)

	return &App{
		Config: cfg,

		Queue:    queue,
		DocRepo:  docRepo,
		TaskRepo: taskRepo,

		IngestUC: ingestUC,
		SearchUC: searchUC,
		TaskUC:   taskUC,
		Exporter: export.NewXLSXExporter(),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
