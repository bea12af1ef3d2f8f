package usecase

import (
	"context"
	"io"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/google/uuid"
)

// StoryInput — провалидированные поля запроса на создание или
// редактирование истории. Валидация обязательных полей и разбор
// epoch-миллисекунд выполняются в обработчике HTTP до вызова бизнес-логики.
type StoryInput struct {
	Title           string
	Story           string
	VisitedLocation []string
	ImageURL        string
	VisitedDate     time.Time
}

// UserUseCase определяет бизнес-логику учётных записей:
// регистрация, логин и получение текущего пользователя.
// Register и Login возвращают пользователя вместе с выписанным токеном доступа.
type UserUseCase interface {
	Register(ctx context.Context, fullName, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// StoryUseCase определяет бизнес-логику работы с историями путешествий.
// Все операции над конкретной историей заново загружают запись под
// фильтром (id, userID) и возвращают shared.ErrStoryNotFound, если
// история не принадлежит вызывающему — даже при верном id.
type StoryUseCase interface {
	AddStory(ctx context.Context, userID uuid.UUID, in StoryInput) (*domain.TravelStory, error)

	// GetAllStories возвращает истории пользователя, избранные первыми,
	// внутри групп — в порядке создания.
	GetAllStories(ctx context.Context, userID uuid.UUID) ([]domain.TravelStory, error)

	EditStory(ctx context.Context, userID, storyID uuid.UUID, in StoryInput) (*domain.TravelStory, error)

	// DeleteStory удаляет историю и публикует задачу на удаление её
	// изображения, если оно не является общим плейсхолдером.
	DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error

	UpdateIsFavourite(ctx context.Context, userID, storyID uuid.UUID, isFavourite bool) (*domain.TravelStory, error)

	// SearchStories ищет истории по подстроке (без учёта регистра)
	// в заголовке, тексте и посещённых местах.
	SearchStories(ctx context.Context, userID uuid.UUID, query string) ([]domain.TravelStory, error)

	// FilterStoriesByDate возвращает истории с visitedDate в [start, end] включительно.
	FilterStoriesByDate(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TravelStory, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем
// изображений (локальный диск, AWS S3, MinIO).
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	// `key` — уникальное имя файла в хранилище.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error

	// FileExists проверяет наличие файла в хранилище.
	FileExists(ctx context.Context, key string) (bool, error)
}
