package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/TravelJournal/internal/shared"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
)

// AuthHandler — обработчик HTTP-запросов учётных записей.
type AuthHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.UserUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userUseCase: uc, logger: logger}
}

type createAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccount регистрирует нового пользователя и возвращает токен доступа.
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "All fields are mandatory!", h.logger)
		return
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "All fields are mandatory!", h.logger)
		return
	}

	user, accessToken, err := h.userUseCase.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrEmailTaken) {
			respondWithError(w, http.StatusBadRequest, "User already exists!", h.logger)
			return
		}
		h.logger.Error("registration failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"error":       false,
		"user":        user.Public(),
		"accessToken": accessToken,
		"message":     "Registration Successful!",
	}, h.logger)
}

// Login проверяет учётные данные и возвращает токен доступа.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Email and password is required!", h.logger)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Email and password is required!", h.logger)
		return
	}

	user, accessToken, err := h.userUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrUserNotFound):
			respondWithError(w, http.StatusBadRequest, "User not found!", h.logger)
		case errors.Is(err, shared.ErrInvalidCredentials):
			respondWithError(w, http.StatusBadRequest, "Password is incorrect!", h.logger)
		default:
			h.logger.Error("login failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"error":       false,
		"message":     "Login Successful!",
		"user":        user.Public(),
		"accessToken": accessToken,
	}, h.logger)
}

// GetUser возвращает пользователя, которому принадлежит токен запроса.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	user, err := h.userUseCase.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			// Токен валиден, но записи пользователя больше нет
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		h.logger.Error("failed to fetch current user", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"message": "",
	}, h.logger)
}
