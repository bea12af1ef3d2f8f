package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Client — файловое хранилище изображений на локальном диске.
// Файлы складываются в каталог uploads и раздаются сервером
// по префиксу /uploads/.
type Client struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewClient создает хранилище в каталоге dir, создавая его при необходимости.
func NewClient(dir, baseURL string, logger *slog.Logger) (*Client, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога загрузок %q: %w", dir, err)
	}
	return &Client{dir: dir, baseURL: baseURL, logger: logger}, nil
}

// UploadFile записывает файл под ключом key и возвращает его публичный URL.
// contentType локальному диску не нужен и игнорируется.
func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	// filepath.Base отсекает попытки выйти из каталога загрузок
	name := filepath.Base(key)
	dst := filepath.Join(c.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла %q: %w", dst, err)
	}
	defer f.Close()

	written, err := io.Copy(f, reader)
	if err != nil {
		return "", fmt.Errorf("ошибка записи файла %q: %w", dst, err)
	}

	c.logger.Info("file uploaded to local storage", "key", name, "bytes", written)
	return fmt.Sprintf("%s/uploads/%s", c.baseURL, name), nil
}

// DeleteFile удаляет файл по ключу.
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	name := filepath.Base(key)
	if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
		return fmt.Errorf("ошибка удаления файла %q: %w", name, err)
	}
	c.logger.Info("file deleted from local storage", "key", name)
	return nil
}

// FileExists проверяет наличие файла по ключу.
func (c *Client) FileExists(ctx context.Context, key string) (bool, error) {
	name := filepath.Base(key)
	_, err := os.Stat(filepath.Join(c.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка проверки файла %q: %w", name, err)
	}
	return true, nil
}
