package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TravelStory представляет запись о путешествии,
// соответствует таблице travel_stories в бд.
// Каждая история принадлежит ровно одному пользователю:
// все выборки и мутации фильтруются по паре (id, user_id).
type TravelStory struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	UserID          uuid.UUID      `json:"userId" db:"user_id"`
	Title           string         `json:"title" db:"title"`
	Story           string         `json:"story" db:"story"`
	VisitedLocation pq.StringArray `json:"visitedLocation" db:"visited_location"`
	ImageURL        string         `json:"imageUrl" db:"image_url"`
	VisitedDate     time.Time      `json:"visitedDate" db:"visited_date"`
	IsFavourite     bool           `json:"isFavourite" db:"is_favourite"`
	CreatedAt       time.Time      `json:"createdOn" db:"created_at"`
}

func (TravelStory) TableName() string {
	return "travel_stories"
}
