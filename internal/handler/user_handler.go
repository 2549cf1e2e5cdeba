package handler

import (
	"fmt"
	"net/http"
	"strings"

	"equiploan/internal/entity"
	"equiploan/internal/repository"
)

// UserHandler - заведение пользователей. Маршрут закрыт middleware
// RequireRoles под admin, само ядро этим не занимается.
type UserHandler struct {
	userRepo *repository.UserRepository
}

func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var body createUserRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || len(body.Password) < 3 || !entity.Role(body.Role).Valid() {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	user, err := h.userRepo.CreateUser(body.Email, body.Password, entity.Role(body.Role))
	if err != nil {
		fmt.Printf("Ошибка создания пользователя %s: %v\n", body.Email, err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}
