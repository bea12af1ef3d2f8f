package payloads

// ImageCleanupPayload представляет задачу на удаление файла изображения,
// оставшегося без истории, через RabbitMQ.
type ImageCleanupPayload struct {
	ImageURL string `json:"imageUrl"`
}
