package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/auth"
	"github.com/GoArmGo/TravelJournal/internal/core/ports"
	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/GoArmGo/TravelJournal/internal/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	jwtSecret   []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase.
// Секрет подписи и срок действия токена передаются явно из конфигурации.
func NewUserUseCase(
	userStorage ports.UserStorage,
	jwtSecret []byte,
	tokenTTL time.Duration,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Register создает нового пользователя и выписывает токен доступа.
// Email уникален: при повторной регистрации возвращается shared.ErrEmailTaken
// и дубликат не создаётся.
func (uc *userUseCase) Register(ctx context.Context, fullName, email, password string) (*domain.User, string, error) {
	existing, err := uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: checking existing user: %w", err)
	}
	if existing != nil {
		return nil, "", shared.ErrEmailTaken
	}

	// Пароль хранится только в виде bcrypt-хеша
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("usecase: creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID.String(), uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: generating access token: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login проверяет пару email/пароль и выписывает токен доступа.
func (uc *userUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: fetching user by email: %w", err)
	}
	if user == nil {
		return nil, "", shared.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.String(), uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: generating access token: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// GetUser возвращает пользователя по идентификатору из токена.
func (uc *userUseCase) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: fetching user by id: %w", err)
	}
	if user == nil {
		return nil, shared.ErrUserNotFound
	}
	return user, nil
}
