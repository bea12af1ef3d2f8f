package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// favouritesFirst — единый порядок выдачи историй: избранные раньше
// остальных, внутри групп — стабильный порядок создания.
const favouritesFirst = `ORDER BY is_favourite DESC, created_at ASC`

// PostgresStorage реализует ports.StoryStorage поверх sqlx
type PostgresStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresStorage(db *sqlx.DB, logger *slog.Logger) *PostgresStorage {
	return &PostgresStorage{db: db, logger: logger}
}

// SaveStory сохраняет новую историю в базе данных
func (s *PostgresStorage) SaveStory(ctx context.Context, story *domain.TravelStory) error {
	start := time.Now()

	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}

	query := `
	INSERT INTO travel_stories (id, user_id, title, story, visited_location, image_url, visited_date, is_favourite, created_at)
	VALUES (:id, :user_id, :title, :story, :visited_location, :image_url, :visited_date, :is_favourite, :created_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, story)
	if err != nil {
		s.logger.Error("failed to save story", "story_id", story.ID, "error", err)
		return fmt.Errorf("ошибка при сохранении истории: %w", err)
	}

	s.logger.Info("story saved successfully",
		"story_id", story.ID,
		"user_id", story.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetStoryForUser получает историю под фильтром владения (id, user_id).
// Возвращает (nil, nil), если подходящей записи нет.
func (s *PostgresStorage) GetStoryForUser(ctx context.Context, id, userID uuid.UUID) (*domain.TravelStory, error) {
	var story domain.TravelStory
	query := `SELECT * FROM travel_stories WHERE id = $1 AND user_id = $2 LIMIT 1`

	err := s.db.GetContext(ctx, &story, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get story", "story_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении истории: %w", err)
	}

	return &story, nil
}

// UpdateStory обновляет историю на месте. Запись без проверки версии:
// конкурирующие правки разрешаются по принципу last-write-wins.
func (s *PostgresStorage) UpdateStory(ctx context.Context, story *domain.TravelStory) error {
	start := time.Now()

	query := `
	UPDATE travel_stories
	SET title = :title,
	    story = :story,
	    visited_location = :visited_location,
	    image_url = :image_url,
	    visited_date = :visited_date,
	    is_favourite = :is_favourite
	WHERE id = :id AND user_id = :user_id
	`

	_, err := s.db.NamedExecContext(ctx, query, story)
	if err != nil {
		s.logger.Error("failed to update story", "story_id", story.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении истории: %w", err)
	}

	s.logger.Info("story updated successfully",
		"story_id", story.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteStory удаляет историю под фильтром владения
func (s *PostgresStorage) DeleteStory(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM travel_stories WHERE id = $1 AND user_id = $2`

	if _, err := s.db.ExecContext(ctx, query, id, userID); err != nil {
		s.logger.Error("failed to delete story", "story_id", id, "error", err)
		return fmt.Errorf("ошибка при удалении истории: %w", err)
	}

	s.logger.Info("story deleted", "story_id", id, "user_id", userID)
	return nil
}

// ListStoriesForUser получает все истории пользователя, избранные первыми
func (s *PostgresStorage) ListStoriesForUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelStory, error) {
	start := time.Now()

	q := `SELECT * FROM travel_stories WHERE user_id = $1 ` + favouritesFirst

	var stories []domain.TravelStory
	if err := s.db.SelectContext(ctx, &stories, q, userID); err != nil {
		s.logger.Error("failed to list stories", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении списка историй: %w", err)
	}

	s.logger.Info("stories listed successfully",
		"user_id", userID,
		"count", len(stories),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stories, nil
}

// SearchStoriesForUser ищет истории пользователя по подстроке без учёта
// регистра в заголовке, тексте и посещённых местах.
func (s *PostgresStorage) SearchStoriesForUser(ctx context.Context, userID uuid.UUID, query string) ([]domain.TravelStory, error) {
	start := time.Now()

	q := `
	SELECT * FROM travel_stories
	WHERE user_id = $1
	  AND (LOWER(title) LIKE LOWER($2)
	   OR LOWER(story) LIKE LOWER($2)
	   OR LOWER(array_to_string(visited_location, ' ')) LIKE LOWER($2))
	` + favouritesFirst

	searchTerm := "%" + query + "%"
	var stories []domain.TravelStory

	if err := s.db.SelectContext(ctx, &stories, q, userID, searchTerm); err != nil {
		s.logger.Error("failed to search stories",
			"user_id", userID,
			"query", query,
			"error", err,
		)
		return nil, fmt.Errorf("ошибка при поиске историй: %w", err)
	}

	s.logger.Info("stories search completed",
		"user_id", userID,
		"query", query,
		"found", len(stories),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stories, nil
}

// FilterStoriesByDate получает истории пользователя с visitedDate
// в диапазоне [start, end] включительно.
func (s *PostgresStorage) FilterStoriesByDate(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]domain.TravelStory, error) {
	start := time.Now()

	q := `
	SELECT * FROM travel_stories
	WHERE user_id = $1
	  AND visited_date >= $2
	  AND visited_date <= $3
	` + favouritesFirst

	var stories []domain.TravelStory
	if err := s.db.SelectContext(ctx, &stories, q, userID, startDate, endDate); err != nil {
		s.logger.Error("failed to filter stories by date",
			"user_id", userID,
			"error", err,
		)
		return nil, fmt.Errorf("ошибка при фильтрации историй по датам: %w", err)
	}

	s.logger.Info("stories filtered by date",
		"user_id", userID,
		"found", len(stories),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stories, nil
}
