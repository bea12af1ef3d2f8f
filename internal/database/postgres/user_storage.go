package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя в бд
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if result := s.db.WithContext(ctx).Create(user); result.Error != nil {
		s.logger.Error("failed to create user", "email", user.Email, "error", result.Error)
		return fmt.Errorf("ошибка при создании пользователя: %w", result.Error)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByEmail получает пользователя по email.
// Возвращает (nil, nil), если пользователь не найден.
func (s *GormUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get user by email", "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", result.Error)
	}
	return &user, nil
}

// GetUserByID получает пользователя по внутреннему ID.
// Возвращает (nil, nil), если пользователь не найден.
func (s *GormUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "user_id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении пользователя по ID: %w", result.Error)
	}
	return &user, nil
}
