package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/GoArmGo/TravelJournal/internal/usecase"
	"github.com/google/uuid"
)

// maxUploadSize ограничивает размер тела multipart-загрузки.
const maxUploadSize = 10 << 20 // 10 MiB

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с флагом ошибки и сообщением.
// Трассировки стека клиенту не возвращаются никогда.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]interface{}{"error": true, "message": message}, logger)
}

// ImageHandler — обработчик загрузки и удаления файлов изображений.
type ImageHandler struct {
	fileStorage   usecase.FileStorage
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

// NewImageHandler создаёт новый экземпляр ImageHandler.
func NewImageHandler(fileStorage usecase.FileStorage, limiter chan struct{}, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		fileStorage:   fileStorage,
		uploadLimiter: limiter,
		logger:        logger,
	}
}

// UploadImage принимает multipart-поле `image`, сохраняет файл под
// уникальным именем и возвращает публичный URL.
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Лимитер ограничивает число параллельных загрузок
	h.uploadLimiter <- struct{}{}
	defer func() { <-h.uploadLimiter }()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "No image uploaded", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "No image uploaded", h.logger)
		return
	}
	defer file.Close()

	key := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	imageURL, err := h.fileStorage.UploadFile(r.Context(), key, file, contentType)
	if err != nil {
		h.logger.Error("failed to store uploaded image", "key", key, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	h.logger.Info("image uploaded", "key", key)
	respondWithJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL}, h.logger)
}

// DeleteImage удаляет файл по переданному imageUrl. Отсутствующий файл —
// не ошибка запроса: возвращается 200 с флагом ошибки, как и в случае
// попытки удалить общий плейсхолдер, которого в хранилище загрузок нет.
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("imageUrl")
	if imageURL == "" {
		respondWithError(w, http.StatusBadRequest, "imageUrl parameter is required", h.logger)
		return
	}

	key := path.Base(imageURL)

	exists, err := h.fileStorage.FileExists(r.Context(), key)
	if err != nil {
		h.logger.Error("failed to check image file", "key", key, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}
	if !exists {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"error": true, "message": "Image not found"}, h.logger)
		return
	}

	if err := h.fileStorage.DeleteFile(r.Context(), key); err != nil {
		h.logger.Error("failed to delete image file", "key", key, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	h.logger.Info("image deleted", "key", key)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"}, h.logger)
}
