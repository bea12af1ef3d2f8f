package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/TravelJournal/internal/config"
	"github.com/GoArmGo/TravelJournal/internal/handler"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// runServer запускает HTTP сервер и блокируется до отмены контекста
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	storyUseCase usecase.StoryUseCase,
	fileStorage usecase.FileStorage,
	uploadLimiter chan struct{},
) error {
	authHandler := handler.NewAuthHandler(userUseCase, logger)
	storyHandler := handler.NewStoryHandler(storyUseCase, logger)
	imageHandler := handler.NewImageHandler(fileStorage, uploadLimiter, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(handler.RequestLogger(logger))
	// SPA ходит с другого origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/create-account", authHandler.CreateAccount)
	r.Post("/login", authHandler.Login)
	r.Post("/image-upload", imageHandler.UploadImage)
	r.Delete("/delete-image", imageHandler.DeleteImage)

	// Маршруты, требующие валидного токена
	r.Group(func(pr chi.Router) {
		pr.Use(handler.Authenticate([]byte(cfg.JWTSecret), logger))

		pr.Get("/get-user", authHandler.GetUser)
		pr.Post("/add-travel-story", storyHandler.AddStory)
		pr.Get("/get-all-stories", storyHandler.GetAllStories)
		pr.Put("/edit-story/{id}", storyHandler.EditStory)
		pr.Delete("/delete-story/{id}", storyHandler.DeleteStory)
		pr.Put("/update-is-favourite/{id}", storyHandler.UpdateIsFavourite)
		pr.Get("/search", storyHandler.SearchStories)
		pr.Get("/travel-stories/filter", storyHandler.FilterStories)
	})

	// Статика: загруженные изображения и бандл ассетов
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir))))

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("termination signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
