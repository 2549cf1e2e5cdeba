package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"equiploan/internal/midlleware"
	"equiploan/internal/repository"
)

type LoginHandler struct {
	userRepo *repository.UserRepository
}

func NewLoginHandler(userRepo *repository.UserRepository) *LoginHandler {
	return &LoginHandler{userRepo: userRepo}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var body loginRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || len(body.Password) < 3 {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	user, err := h.userRepo.Login(body.Email, body.Password)
	if err != nil {
		fmt.Printf("Ошибка входа для %s: %v\n", body.Email, err)
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	sessionToken, err := h.userRepo.CreateSession(user.ID)
	if err != nil {
		fmt.Printf("Ошибка создания сессии для пользователя %d: %v\n", user.ID, err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    sessionToken,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	session, _ := middleware.Store.Get(r, "app-session")
	session.Values["user_id"] = user.ID
	session.Values["role"] = string(user.Role)

	if err := session.Save(r, w); err != nil {
		fmt.Printf("Ошибка сохранения сессии: %v\n", err)
	}

	fmt.Printf("Успешный вход: %s (ID: %d, Роль: %s)\n", user.Email, user.ID, user.Role)

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout - выход из системы
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Удаляем сессию из БД
	cookie, err := r.Cookie("session_token")
	if err == nil {
		h.userRepo.DeleteSession(cookie.Value)
	}

	// Удаляем cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	session, _ := middleware.Store.Get(r, "app-session")
	session.Options.MaxAge = -1
	session.Save(r, w)

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
