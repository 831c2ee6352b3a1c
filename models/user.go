package models

import "time"

// Единственная роль: оператор реестра
const (
	RoleOperator = "operator"
)

// User - учётная запись оператора, задаётся конфигурацией и не хранится в БД
type User struct {
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// Запросы для аутентификации
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
