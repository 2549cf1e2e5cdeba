package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"equiploan/internal/entity"
)

const sessionLifetime = 24 * time.Hour

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (entity.User, error) {
	var u entity.User

	err := r.db.QueryRow(`
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)

	return u, err
}

// Login - проверить почту и пароль, вернуть пользователя.
// Какая именно часть не сошлась, наружу не говорим.
func (r *UserRepository) Login(email, password string) (entity.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, &UserRepositoryError{"invalid credentials"}
		}
		return entity.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return entity.User{}, &UserRepositoryError{"invalid credentials"}
	}

	return user, nil
}

// Создать пользователя. Пароль хешируем здесь, открытым он в базу
// не попадает.
func (r *UserRepository) CreateUser(email, password string, role entity.Role) (entity.User, error) {
	if !role.Valid() {
		return entity.User{}, &UserRepositoryError{"unknown role " + string(role)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, err
	}

	var u entity.User
	err = r.db.QueryRow(`
		INSERT INTO users (email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, role, created_at
	`, email, string(hash), role, time.Now()).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)

	return u, err
}

// Создать сессию для пользователя
func (r *UserRepository) CreateSession(userID int) (string, error) {
	token := uuid.NewString()

	_, err := r.db.Exec(`
		INSERT INTO user_sessions (user_id, session_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, token, time.Now().Add(sessionLifetime), time.Now())

	if err != nil {
		return "", err
	}

	return token, nil
}

// GetPrincipal - по токену сессии достать проверенную пару (id, роль).
func (r *UserRepository) GetPrincipal(sessionToken string) (entity.Principal, error) {
	var p entity.Principal

	err := r.db.QueryRow(`
		SELECT u.id, u.role
		FROM user_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_token = $1 AND s.expires_at > $2
	`, sessionToken, time.Now()).Scan(&p.UserID, &p.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return entity.Principal{}, &UserRepositoryError{"session not found or expired"}
	}

	return p, err
}

func (r *UserRepository) DeleteSession(sessionToken string) error {
	_, err := r.db.Exec(`
		DELETE FROM user_sessions WHERE session_token = $1
	`, sessionToken)

	return err
}

// SeedDefaultUsers - посадить стартовых пользователей, если таблица пустая.
func (r *UserRepository) SeedDefaultUsers() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	seed := []struct {
		email    string
		password string
		role     entity.Role
	}{
		{"admin.unique@school.edu", "admin123", entity.RoleAdmin},
		{"staff.unique@school.edu", "staff123", entity.RoleStaff},
		{"student.unique@school.edu", "student123", entity.RoleStudent},
	}

	for _, s := range seed {
		if _, err := r.CreateUser(s.email, s.password, s.role); err != nil {
			return err
		}
	}

	return nil
}

type UserRepositoryError struct {
	Message string
}

func (e *UserRepositoryError) Error() string {
	return "user repository error: " + e.Message
}
