package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/auth"
	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/GoArmGo/TravelJournal/internal/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStorage struct {
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User
	err     error
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[uuid.UUID]*domain.User),
	}
}

func (f *fakeUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const testSecret = "test-secret"

func newUserUC(store *fakeUserStorage) UserUseCase {
	return NewUserUseCase(store, []byte(testSecret), 72*time.Hour, testLogger())
}

func TestRegister_IssuesTokenForNewUser(t *testing.T) {
	store := newFakeUserStorage()
	uc := newUserUC(store)

	user, token, err := uc.Register(context.Background(), "A", "a@x.com", "p")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "p", user.PasswordHash, "password must never be stored in plaintext")

	gotID, err := auth.GetUserIDFromToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), gotID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStorage()
	uc := newUserUC(store)

	_, _, err := uc.Register(context.Background(), "A", "a@x.com", "p")
	require.NoError(t, err)

	_, _, err = uc.Register(context.Background(), "A", "a@x.com", "p")
	require.ErrorIs(t, err, shared.ErrEmailTaken)
	assert.Len(t, store.byEmail, 1, "duplicate registration must not create a record")
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeUserStorage()
	uc := newUserUC(store)

	_, _, err := uc.Register(context.Background(), "A", "a@x.com", "correct")
	require.NoError(t, err)

	_, token, err := uc.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.Empty(t, token, "no credential may be issued for a wrong password")
}

func TestLogin_UnknownUser(t *testing.T) {
	uc := newUserUC(newFakeUserStorage())

	_, _, err := uc.Login(context.Background(), "nobody@x.com", "p")
	require.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStorage()
	uc := newUserUC(store)

	registered, _, err := uc.Register(context.Background(), "A", "a@x.com", "p")
	require.NoError(t, err)

	user, token, err := uc.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestGetUser_Missing(t *testing.T) {
	uc := newUserUC(newFakeUserStorage())

	_, err := uc.GetUser(context.Background(), uuid.New())
	require.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestRegister_StorageFailure(t *testing.T) {
	store := newFakeUserStorage()
	store.err = errors.New("connection refused")
	uc := newUserUC(store)

	_, _, err := uc.Register(context.Background(), "A", "a@x.com", "p")
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrEmailTaken)
}
