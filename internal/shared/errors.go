package shared

import "errors"

// Сентинельные ошибки доменного уровня. Обработчики HTTP переводят их
// в статус и сообщение ответа, слои хранения их не знают.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("password is incorrect")
	ErrStoryNotFound      = errors.New("travel story not found")
	ErrInvalidToken       = errors.New("invalid token")
)
