package ports

import (
	"context"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/google/uuid"
)

// StoryStorage определяет методы для взаимодействия с хранилищем историй.
// Методы чтения возвращают (nil, nil), если запись не найдена под
// фильтром владения — решение о 404 принимает слой бизнес-логики.
type StoryStorage interface {
	SaveStory(ctx context.Context, story *domain.TravelStory) error
	GetStoryForUser(ctx context.Context, id, userID uuid.UUID) (*domain.TravelStory, error)
	UpdateStory(ctx context.Context, story *domain.TravelStory) error
	DeleteStory(ctx context.Context, id, userID uuid.UUID) error
	ListStoriesForUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelStory, error)
	SearchStoriesForUser(ctx context.Context, userID uuid.UUID, query string) ([]domain.TravelStory, error)
	FilterStoriesByDate(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TravelStory, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
