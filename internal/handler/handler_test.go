package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/auth"
	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeUserUseCase реализует usecase.UserUseCase через функции-поля.
type fakeUserUseCase struct {
	registerFn func(ctx context.Context, fullName, email, password string) (*domain.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
	getUserFn  func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (f *fakeUserUseCase) Register(ctx context.Context, fullName, email, password string) (*domain.User, string, error) {
	return f.registerFn(ctx, fullName, email, password)
}

func (f *fakeUserUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeUserUseCase) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return f.getUserFn(ctx, userID)
}

// fakeStoryUseCase реализует usecase.StoryUseCase через функции-поля.
type fakeStoryUseCase struct {
	addFn    func(ctx context.Context, userID uuid.UUID, in usecase.StoryInput) (*domain.TravelStory, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]domain.TravelStory, error)
	editFn   func(ctx context.Context, userID, storyID uuid.UUID, in usecase.StoryInput) (*domain.TravelStory, error)
	deleteFn func(ctx context.Context, userID, storyID uuid.UUID) error
	favFn    func(ctx context.Context, userID, storyID uuid.UUID, isFavourite bool) (*domain.TravelStory, error)
	searchFn func(ctx context.Context, userID uuid.UUID, query string) ([]domain.TravelStory, error)
	filterFn func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TravelStory, error)
}

func (f *fakeStoryUseCase) AddStory(ctx context.Context, userID uuid.UUID, in usecase.StoryInput) (*domain.TravelStory, error) {
	return f.addFn(ctx, userID, in)
}

func (f *fakeStoryUseCase) GetAllStories(ctx context.Context, userID uuid.UUID) ([]domain.TravelStory, error) {
	return f.listFn(ctx, userID)
}

func (f *fakeStoryUseCase) EditStory(ctx context.Context, userID, storyID uuid.UUID, in usecase.StoryInput) (*domain.TravelStory, error) {
	return f.editFn(ctx, userID, storyID, in)
}

func (f *fakeStoryUseCase) DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error {
	return f.deleteFn(ctx, userID, storyID)
}

func (f *fakeStoryUseCase) UpdateIsFavourite(ctx context.Context, userID, storyID uuid.UUID, isFavourite bool) (*domain.TravelStory, error) {
	return f.favFn(ctx, userID, storyID, isFavourite)
}

func (f *fakeStoryUseCase) SearchStories(ctx context.Context, userID uuid.UUID, query string) ([]domain.TravelStory, error) {
	return f.searchFn(ctx, userID, query)
}

func (f *fakeStoryUseCase) FilterStoriesByDate(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TravelStory, error) {
	return f.filterFn(ctx, userID, start, end)
}

// fakeFileStorage реализует usecase.FileStorage через функции-поля.
type fakeFileStorage struct {
	uploadFn func(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	deleteFn func(ctx context.Context, key string) error
	existsFn func(ctx context.Context, key string) (bool, error)
}

func (f *fakeFileStorage) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	return f.uploadFn(ctx, key, r, contentType)
}

func (f *fakeFileStorage) DeleteFile(ctx context.Context, key string) error {
	return f.deleteFn(ctx, key)
}

func (f *fakeFileStorage) FileExists(ctx context.Context, key string) (bool, error) {
	return f.existsFn(ctx, key)
}

// newTestRouter собирает маршруты так же, как боевой сервер.
func newTestRouter(userUC usecase.UserUseCase, storyUC usecase.StoryUseCase, fileStorage usecase.FileStorage) http.Handler {
	logger := testLogger()
	authHandler := NewAuthHandler(userUC, logger)
	storyHandler := NewStoryHandler(storyUC, logger)
	imageHandler := NewImageHandler(fileStorage, make(chan struct{}, 1), logger)

	r := chi.NewRouter()
	r.Post("/create-account", authHandler.CreateAccount)
	r.Post("/login", authHandler.Login)
	r.Post("/image-upload", imageHandler.UploadImage)
	r.Delete("/delete-image", imageHandler.DeleteImage)

	r.Group(func(pr chi.Router) {
		pr.Use(Authenticate([]byte(testSecret), logger))
		pr.Get("/get-user", authHandler.GetUser)
		pr.Post("/add-travel-story", storyHandler.AddStory)
		pr.Get("/get-all-stories", storyHandler.GetAllStories)
		pr.Put("/edit-story/{id}", storyHandler.EditStory)
		pr.Delete("/delete-story/{id}", storyHandler.DeleteStory)
		pr.Put("/update-is-favourite/{id}", storyHandler.UpdateIsFavourite)
		pr.Get("/search", storyHandler.SearchStories)
		pr.Get("/travel-stories/filter", storyHandler.FilterStories)
	})

	return r
}

func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := auth.GenerateToken(userID.String(), []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, target, authHeader string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestUploadImage_MissingFile(t *testing.T) {
	router := newTestRouter(nil, nil, &fakeFileStorage{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/image-upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image uploaded")
}

func TestUploadImage_ReturnsPublicURL(t *testing.T) {
	var gotKey string
	fs := &fakeFileStorage{
		uploadFn: func(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
			gotKey = key
			return "http://localhost:8000/uploads/" + key, nil
		},
	}
	router := newTestRouter(nil, nil, fs)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "vacation.PNG")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/image-upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasSuffix(gotKey, ".png"), "extension must be normalized: %s", gotKey)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "http://localhost:8000/uploads/"+gotKey, body["imageUrl"])
}

func TestDeleteImage_MissingParameter(t *testing.T) {
	router := newTestRouter(nil, nil, &fakeFileStorage{})

	rec, body := doJSON(t, router, http.MethodDelete, "/delete-image", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "imageUrl parameter is required", body["message"])
}

func TestDeleteImage_AbsentFile(t *testing.T) {
	fs := &fakeFileStorage{
		existsFn: func(ctx context.Context, key string) (bool, error) { return false, nil },
	}
	router := newTestRouter(nil, nil, fs)

	rec, body := doJSON(t, router, http.MethodDelete, "/delete-image?imageUrl=http://localhost:8000/uploads/gone.png", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Image not found", body["message"])
}

func TestDeleteImage_Success(t *testing.T) {
	var deletedKey string
	fs := &fakeFileStorage{
		existsFn: func(ctx context.Context, key string) (bool, error) { return true, nil },
		deleteFn: func(ctx context.Context, key string) error {
			deletedKey = key
			return nil
		},
	}
	router := newTestRouter(nil, nil, fs)

	rec, body := doJSON(t, router, http.MethodDelete, "/delete-image?imageUrl=http://localhost:8000/uploads/old.png", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Image deleted successfully", body["message"])
	assert.Equal(t, "old.png", deletedKey)
}
