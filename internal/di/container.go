package di

import (
	"github.com/GoArmGo/TravelJournal/internal/adapter/storage/local"
	"github.com/GoArmGo/TravelJournal/internal/adapter/storage/minio"
	"github.com/GoArmGo/TravelJournal/internal/app"
	"github.com/GoArmGo/TravelJournal/internal/config"
	"github.com/GoArmGo/TravelJournal/internal/database/client"
	"github.com/GoArmGo/TravelJournal/internal/database/postgres"
	"github.com/GoArmGo/TravelJournal/internal/database/storage"
	"github.com/GoArmGo/TravelJournal/internal/logger"
	"github.com/GoArmGo/TravelJournal/internal/rabbitmq"
	"github.com/GoArmGo/TravelJournal/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Подключения к PostgreSQL: sqlx для историй, GORM для пользователей;
	// миграции применяются при открытии GORM-клиента
	dbClient, err := client.NewClient(cfg.DatabaseURL, slogger)
	if err != nil {
		return nil, err
	}

	gormClient, err := postgres.NewClient(cfg.DatabaseURL, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	storyStorage := storage.NewPostgresStorage(dbClient.DB, slogger)
	userStorage := postgres.NewGormUserStorage(gormClient.DB, slogger)

	// 4. Файловое хранилище изображений: MinIO, если настроен endpoint,
	// иначе локальный каталог загрузок
	var fileStorage usecase.FileStorage
	if cfg.Minio.Endpoint != "" {
		fileStorage, err = minio.NewClient(cfg, slogger)
	} else {
		fileStorage, err = local.NewClient(cfg.UploadsDir, cfg.BaseURL, slogger)
	}
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher и consumer)
	rabbitClient, err := rabbitmq.NewClient(cfg.RabbitMQ.RabbitMQURL, cfg.RabbitMQ.RabbitMQQueueName, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики
	userUseCase := usecase.NewUserUseCase(userStorage, []byte(cfg.JWTSecret), cfg.TokenTTL, slogger)
	storyUseCase := usecase.NewStoryUseCase(storyStorage, rabbitClient, cfg.PlaceholderImageURL(), slogger)

	// 7. Лимитер параллельных загрузок изображений
	uploadLimiter := make(chan struct{}, 5)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		gormClient,
		rabbitClient,
		userUseCase,
		storyUseCase,
		fileStorage,
		rabbitClient,
		uploadLimiter,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
