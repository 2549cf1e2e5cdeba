package middleware

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"equiploan/internal/entity"
	"equiploan/internal/repository"
)

// Store - общее cookie-хранилище сессий для middleware и хендлеров.
// Ключ берем из окружения; без него ключ случайный и cookie-сессии
// живут до перезапуска (на этот случай есть токен в базе).
var Store = sessions.NewCookieStore(sessionKey())

func sessionKey() []byte {
	if key := os.Getenv("SESSION_KEY"); key != "" {
		return []byte(key)
	}
	return securecookie.GenerateRandomKey(32)
}

type contextKey int

const principalKey contextKey = 0

// PrincipalFrom - достать принципала, положенного middleware в контекст.
func PrincipalFrom(r *http.Request) (entity.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(entity.Principal)
	return p, ok
}

// WithPrincipal - подложить принципала в запрос напрямую, мимо сессии.
func WithPrincipal(r *http.Request, p entity.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// ResolvePrincipal кладет в контекст проверенную пару (id, роль), если
// у запроса есть живая сессия. Запрос пропускается в любом случае -
// для маршрутов, где часть методов публичная.
func ResolvePrincipal(userRepo *repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := Store.Get(r, "app-session")

			userID, userIDOk := session.Values["user_id"].(int)
			role, roleOk := session.Values["role"].(string)

			if userIDOk && roleOk && userID != 0 && entity.Role(role).Valid() {
				next.ServeHTTP(w, WithPrincipal(r, entity.Principal{
					UserID: userID,
					Role:   entity.Role(role),
				}))
				return
			}

			// Cookie-сессии нет - пробуем токен из базы.
			cookie, err := r.Cookie("session_token")
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := userRepo.GetPrincipal(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, WithPrincipal(r, principal))
		})
	}
}

// RequireAuth - как ResolvePrincipal, но без сессии дальше не пускает.
func RequireAuth(userRepo *repository.UserRepository) func(http.Handler) http.Handler {
	resolve := ResolvePrincipal(userRepo)

	return func(next http.Handler) http.Handler {
		return resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFrom(r); !ok {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

// RequireRoles - заслон для маршрутов вне ядра (например, заведение
// пользователей). Права действий самого ядра проверяет ядро.
func RequireRoles(allowedRoles []entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r)
			if !ok {
				unauthorized(w)
				return
			}

			for _, role := range allowedRoles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Forbidden"}`))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"No token"}`))
}
