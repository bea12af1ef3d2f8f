package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/TravelJournal/internal/config"
	"github.com/GoArmGo/TravelJournal/internal/core/ports"
	"github.com/GoArmGo/TravelJournal/internal/database/client"
	"github.com/GoArmGo/TravelJournal/internal/database/postgres"
	"github.com/GoArmGo/TravelJournal/internal/rabbitmq"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	dbClient        *client.Client
	gormClient      *postgres.Client
	rabbitClient    *rabbitmq.Client
	userUseCase     usecase.UserUseCase
	storyUseCase    usecase.StoryUseCase
	fileStorage     usecase.FileStorage
	cleanupConsumer ports.ImageCleanupConsumer
	uploadLimiter   chan struct{}
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	gormClient *postgres.Client,
	rabbitClient *rabbitmq.Client,
	userUseCase usecase.UserUseCase,
	storyUseCase usecase.StoryUseCase,
	fileStorage usecase.FileStorage,
	cleanupConsumer ports.ImageCleanupConsumer,
	uploadLimiter chan struct{},
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		dbClient:        dbClient,
		gormClient:      gormClient,
		rabbitClient:    rabbitClient,
		userUseCase:     userUseCase,
		storyUseCase:    storyUseCase,
		fileStorage:     fileStorage,
		cleanupConsumer: cleanupConsumer,
		uploadLimiter:   uploadLimiter,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.userUseCase, a.storyUseCase, a.fileStorage, a.uploadLimiter)

	case "worker":
		err = runWorker(ctx, a.Config, a.logger, a.fileStorage, a.cleanupConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	a.logger.Info("shutting down, closing resources")

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	a.logger.Info("shutdown complete")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	if a.gormClient != nil {
		if err := a.gormClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия GORM-соединения: %w", err)
		}
	}

	if a.rabbitClient != nil {
		a.rabbitClient.Close()
	}

	return nil
}
