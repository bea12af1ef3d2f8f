package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/domain"
	"github.com/GoArmGo/TravelJournal/internal/shared"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// StoryHandler — обработчик HTTP-запросов для работы с историями путешествий.
type StoryHandler struct {
	storyUseCase usecase.StoryUseCase
	logger       *slog.Logger
}

// NewStoryHandler создаёт новый экземпляр StoryHandler.
func NewStoryHandler(uc usecase.StoryUseCase, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{storyUseCase: uc, logger: logger}
}

type storyRequest struct {
	Title           string   `json:"title"`
	Story           string   `json:"story"`
	VisitedLocation []string `json:"visitedLocation"`
	ImageURL        string   `json:"imageUrl"`
	// Дата передается строкой с epoch-миллисекундами
	VisitedDate string `json:"visitedDate"`
}

// parseEpochMillis разбирает строку с epoch-миллисекундами в time.Time.
func parseEpochMillis(value string) (time.Time, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// storyIDFromRequest разбирает параметр {id} маршрута. Невалидный UUID не
// может указывать ни на одну историю, поэтому неотличим от отсутствующей.
func storyIDFromRequest(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// nonNilStories заменяет nil пустым списком, чтобы в JSON всегда был массив.
func nonNilStories(stories []domain.TravelStory) []domain.TravelStory {
	if stories == nil {
		return []domain.TravelStory{}
	}
	return stories
}

// AddStory создает новую историю текущего пользователя.
func (h *StoryHandler) AddStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "All fields are required", h.logger)
		return
	}

	if req.Title == "" || req.Story == "" || len(req.VisitedLocation) == 0 || req.ImageURL == "" || req.VisitedDate == "" {
		respondWithError(w, http.StatusBadRequest, "All fields are required", h.logger)
		return
	}

	visitedDate, err := parseEpochMillis(req.VisitedDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "All fields are required", h.logger)
		return
	}

	story, err := h.storyUseCase.AddStory(r.Context(), userID, usecase.StoryInput{
		Title:           req.Title,
		Story:           req.Story,
		VisitedLocation: req.VisitedLocation,
		ImageURL:        req.ImageURL,
		VisitedDate:     visitedDate,
	})
	if err != nil {
		h.logger.Error("failed to add story", "user_id", userID, "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"error":   false,
		"message": "Travel story created successfully",
		"story":   story,
	}, h.logger)
}

// GetAllStories возвращает все истории текущего пользователя,
// избранные первыми.
func (h *StoryHandler) GetAllStories(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	stories, err := h.storyUseCase.GetAllStories(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list stories", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"stories": nonNilStories(stories)}, h.logger)
}

// EditStory обновляет историю, принадлежащую текущему пользователю.
func (h *StoryHandler) EditStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	storyID, err := storyIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Travel story not found", h.logger)
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "All fields are required", h.logger)
		return
	}

	// imageUrl при редактировании опционален
	if req.Title == "" || req.Story == "" || len(req.VisitedLocation) == 0 || req.VisitedDate == "" {
		respondWithError(w, http.StatusBadRequest, "All fields are required", h.logger)
		return
	}

	visitedDate, err := parseEpochMillis(req.VisitedDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "All fields are required", h.logger)
		return
	}

	story, err := h.storyUseCase.EditStory(r.Context(), userID, storyID, usecase.StoryInput{
		Title:           req.Title,
		Story:           req.Story,
		VisitedLocation: req.VisitedLocation,
		ImageURL:        req.ImageURL,
		VisitedDate:     visitedDate,
	})
	if err != nil {
		if errors.Is(err, shared.ErrStoryNotFound) {
			respondWithError(w, http.StatusNotFound, "Travel story not found", h.logger)
			return
		}
		h.logger.Error("failed to edit story", "story_id", storyID, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"story":   story,
		"message": "Update Successful",
	}, h.logger)
}

// DeleteStory удаляет историю текущего пользователя; файл изображения
// удаляется асинхронно и его судьба не влияет на ответ.
func (h *StoryHandler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	storyID, err := storyIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Travel story not found", h.logger)
		return
	}

	if err := h.storyUseCase.DeleteStory(r.Context(), userID, storyID); err != nil {
		if errors.Is(err, shared.ErrStoryNotFound) {
			respondWithError(w, http.StatusNotFound, "Travel story not found", h.logger)
			return
		}
		h.logger.Error("failed to delete story", "story_id", storyID, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Travel story deleted successfully !",
	}, h.logger)
}

type updateFavouriteRequest struct {
	IsFavourite bool `json:"isFavourite"`
}

// UpdateIsFavourite переключает флаг избранного. Сбой хранилища отдается
// как 500, а не 200 с флагом ошибки.
func (h *StoryHandler) UpdateIsFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	storyID, err := storyIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Travel story not found", h.logger)
		return
	}

	var req updateFavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "isFavourite is required", h.logger)
		return
	}

	story, err := h.storyUseCase.UpdateIsFavourite(r.Context(), userID, storyID, req.IsFavourite)
	if err != nil {
		if errors.Is(err, shared.ErrStoryNotFound) {
			respondWithError(w, http.StatusNotFound, "Travel story not found", h.logger)
			return
		}
		h.logger.Error("failed to update favourite flag", "story_id", storyID, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"story":   story,
		"message": "Updated successfully !",
	}, h.logger)
}

// SearchStories ищет истории по подстроке запроса.
func (h *StoryHandler) SearchStories(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		respondWithError(w, http.StatusNotFound, "query is required", h.logger)
		return
	}

	stories, err := h.storyUseCase.SearchStories(r.Context(), userID, query)
	if err != nil {
		h.logger.Error("failed to search stories", "user_id", userID, "query", query, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"stories": nonNilStories(stories)}, h.logger)
}

// FilterStories возвращает истории с датой посещения в заданном диапазоне.
func (h *StoryHandler) FilterStories(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	start, errStart := parseEpochMillis(r.URL.Query().Get("startDate"))
	end, errEnd := parseEpochMillis(r.URL.Query().Get("endDate"))
	if errStart != nil || errEnd != nil {
		respondWithError(w, http.StatusBadRequest, "startDate and endDate are required", h.logger)
		return
	}

	stories, err := h.storyUseCase.FilterStoriesByDate(r.Context(), userID, start, end)
	if err != nil {
		h.logger.Error("failed to filter stories", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"stories": nonNilStories(stories)}, h.logger)
}
