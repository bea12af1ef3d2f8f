package ports

import (
	"context"

	"github.com/GoArmGo/TravelJournal/internal/messaging/payloads"
)

// ImageCleanupPublisher определяет методы для публикации задач на удаление
// файлов изображений. Используется сервером при удалении истории: публикация
// асинхронна и best-effort, её сбой никогда не проваливает запрос.
type ImageCleanupPublisher interface {
	PublishImageCleanup(ctx context.Context, payload payloads.ImageCleanupPayload) error
}

// ImageCleanupConsumer определяет методы для потребления задач на удаление,
// будет использоваться воркером для получения задач из очереди.
type ImageCleanupConsumer interface {
	// StartConsumingImageCleanup начинает прослушивание очереди,
	// принимает функцию-обработчик для каждого полученного сообщения.
	StartConsumingImageCleanup(ctx context.Context, handler func(context.Context, payloads.ImageCleanupPayload) error) error
}
