package app

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/GoArmGo/TravelJournal/internal/config"
	"github.com/GoArmGo/TravelJournal/internal/core/ports"
	"github.com/GoArmGo/TravelJournal/internal/messaging/payloads"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
)

// runWorker запускает потребителя RabbitMQ и удаляет файлы изображений
// по задачам из очереди. Блокируется до отмены контекста.
func runWorker(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	fileStorage usecase.FileStorage,
	cleanupConsumer ports.ImageCleanupConsumer,
) error {
	logger.Info("worker started, waiting for image cleanup tasks")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	placeholderName := path.Base(cfg.PlaceholderImageURL())

	messageHandler := func(ctx context.Context, payload payloads.ImageCleanupPayload) error {
		key := path.Base(payload.ImageURL)

		// Общий плейсхолдер принадлежит всем историям сразу
		if key == placeholderName {
			logger.Info("skipping placeholder image", "image_url", payload.ImageURL)
			return nil
		}

		exists, err := fileStorage.FileExists(ctx, key)
		if err != nil {
			return fmt.Errorf("checking image file %s: %w", key, err)
		}
		if !exists {
			// Файл уже удален — задача выполнена
			logger.Warn("image file already absent", "key", key)
			return nil
		}

		if err := fileStorage.DeleteFile(ctx, key); err != nil {
			return fmt.Errorf("deleting image file %s: %w", key, err)
		}

		logger.Info("orphan image removed", "key", key)
		return nil
	}

	if err := cleanupConsumer.StartConsumingImageCleanup(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()

	logger.Info("termination signal received, stopping worker")
	cancelWorker()

	return nil
}
