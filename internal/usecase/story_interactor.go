package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/core/ports"
	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/GoArmGo/TravelJournal/internal/messaging/payloads"
	"github.com/GoArmGo/TravelJournal/internal/shared"
	"github.com/google/uuid"
)

// storyUseCase implements StoryUseCase
type storyUseCase struct {
	storyStorage   ports.StoryStorage
	cleanupPub     ports.ImageCleanupPublisher
	placeholderURL string
	logger         *slog.Logger
}

// NewStoryUseCase создает новый экземпляр StoryUseCase.
func NewStoryUseCase(
	storyStorage ports.StoryStorage,
	cleanupPub ports.ImageCleanupPublisher,
	placeholderURL string,
	logger *slog.Logger,
) StoryUseCase {
	return &storyUseCase{
		storyStorage:   storyStorage,
		cleanupPub:     cleanupPub,
		placeholderURL: placeholderURL,
		logger:         logger,
	}
}

// loadOwnedStory заново загружает историю под фильтром (id, userID).
// Единственная точка проверки владения: чужая и несуществующая история
// неразличимы для вызывающего.
func (uc *storyUseCase) loadOwnedStory(ctx context.Context, userID, storyID uuid.UUID) (*domain.TravelStory, error) {
	story, err := uc.storyStorage.GetStoryForUser(ctx, storyID, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: fetching story: %w", err)
	}
	if story == nil {
		return nil, shared.ErrStoryNotFound
	}
	return story, nil
}

func (uc *storyUseCase) AddStory(ctx context.Context, userID uuid.UUID, in StoryInput) (*domain.TravelStory, error) {
	story := &domain.TravelStory{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           in.Title,
		Story:           in.Story,
		VisitedLocation: in.VisitedLocation,
		ImageURL:        in.ImageURL,
		VisitedDate:     in.VisitedDate,
		IsFavourite:     false,
		CreatedAt:       time.Now(),
	}

	if err := uc.storyStorage.SaveStory(ctx, story); err != nil {
		return nil, fmt.Errorf("usecase: saving story: %w", err)
	}

	uc.logger.Info("travel story created", "story_id", story.ID, "user_id", userID)
	return story, nil
}

func (uc *storyUseCase) GetAllStories(ctx context.Context, userID uuid.UUID) ([]domain.TravelStory, error) {
	stories, err := uc.storyStorage.ListStoriesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: listing stories: %w", err)
	}
	return stories, nil
}

func (uc *storyUseCase) EditStory(ctx context.Context, userID, storyID uuid.UUID, in StoryInput) (*domain.TravelStory, error) {
	story, err := uc.loadOwnedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	story.Title = in.Title
	story.Story = in.Story
	story.VisitedLocation = in.VisitedLocation
	story.VisitedDate = in.VisitedDate
	// imageUrl опционален при редактировании: пустое значение
	// заменяется общим плейсхолдером
	if in.ImageURL != "" {
		story.ImageURL = in.ImageURL
	} else {
		story.ImageURL = uc.placeholderURL
	}

	if err := uc.storyStorage.UpdateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("usecase: updating story: %w", err)
	}

	uc.logger.Info("travel story updated", "story_id", story.ID, "user_id", userID)
	return story, nil
}

func (uc *storyUseCase) DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error {
	story, err := uc.loadOwnedStory(ctx, userID, storyID)
	if err != nil {
		return err
	}

	if err := uc.storyStorage.DeleteStory(ctx, storyID, userID); err != nil {
		return fmt.Errorf("usecase: deleting story: %w", err)
	}

	uc.logger.Info("travel story deleted", "story_id", storyID, "user_id", userID)

	// Удаление файла — асинхронная best-effort задача: публикуем её в
	// очередь и логируем сбой публикации, не проваливая запрос.
	// Плейсхолдер общий для всех историй и не удаляется никогда.
	if story.ImageURL != "" && story.ImageURL != uc.placeholderURL {
		payload := payloads.ImageCleanupPayload{ImageURL: story.ImageURL}
		if err := uc.cleanupPub.PublishImageCleanup(ctx, payload); err != nil {
			uc.logger.Error("failed to publish image cleanup task",
				"story_id", storyID,
				"image_url", story.ImageURL,
				"error", err,
			)
		}
	}

	return nil
}

func (uc *storyUseCase) UpdateIsFavourite(ctx context.Context, userID, storyID uuid.UUID, isFavourite bool) (*domain.TravelStory, error) {
	story, err := uc.loadOwnedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	story.IsFavourite = isFavourite

	if err := uc.storyStorage.UpdateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("usecase: updating favourite flag: %w", err)
	}

	uc.logger.Info("favourite flag updated", "story_id", storyID, "user_id", userID, "is_favourite", isFavourite)
	return story, nil
}

func (uc *storyUseCase) SearchStories(ctx context.Context, userID uuid.UUID, query string) ([]domain.TravelStory, error) {
	stories, err := uc.storyStorage.SearchStoriesForUser(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("usecase: searching stories: %w", err)
	}
	return stories, nil
}

func (uc *storyUseCase) FilterStoriesByDate(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TravelStory, error) {
	stories, err := uc.storyStorage.FilterStoriesByDate(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("usecase: filtering stories by date: %w", err)
	}
	return stories, nil
}
