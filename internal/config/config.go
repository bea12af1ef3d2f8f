package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
// Секрет подписи токенов и строка подключения к бд передаются
// дальше явными зависимостями, а не через глобальное состояние.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT"`

	// BaseURL — внешний адрес сервера, из него строятся ссылки
	// на загруженные изображения и плейсхолдер.
	BaseURL string `env:"BASE_URL"`

	JWTSecret string        `env:"ACCESS_TOKEN_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"72h"`

	UploadsDir string `env:"UPLOADS_DIR" envDefault:"uploads"`
	AssetsDir  string `env:"ASSETS_DIR" envDefault:"assets"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Настройки для MinIO / S3. Если endpoint не задан,
	// используется локальное файловое хранилище.
	Minio struct {
		Endpoint        string `env:"MINIO_ENDPOINT"`
		AccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
		UseSSL          bool   `env:"MINIO_USE_SSL"`
		BucketName      string `env:"MINIO_BUCKET_NAME"`
		Region          string `env:"MINIO_REGION"`
	}

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL,required"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"image_cleanup_queue"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8000"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.ServerPort)
	}

	return &cfg, nil
}

// PlaceholderImageURL возвращает URL общего плейсхолдера. Файл плейсхолдера
// никогда не удаляется при удалении историй.
func (c *Config) PlaceholderImageURL() string {
	return c.BaseURL + "/assets/placeholder.png"
}
