package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdOn" db:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser — публичные поля пользователя, возвращаемые
// в ответах регистрации и логина.
type PublicUser struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Public возвращает публичное представление пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{FullName: u.FullName, Email: u.Email}
}
