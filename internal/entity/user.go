package entity

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleStaff || r == RoleAdmin
}

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal - уже проверенная пара (пользователь, роль) из сессии.
// Ядро ей доверяет и само токены не разбирает.
type Principal struct {
	UserID int  `json:"userId"`
	Role   Role `json:"role"`
}

type UserSession struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	SessionToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
