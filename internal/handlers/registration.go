package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/pkg/utils"
	"github.com/google/uuid"
)

// Legacy registration API backed by PostgreSQL. Predates the move to the
// external identity provider; kept for the old mobile client.

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

type RegisterUserBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisteredUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterUser creates a registered user row. Duplicate emails get a 409.
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	var exists bool
	err := database.PostgresDB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM registered_users WHERE LOWER(email) = LOWER($1))`,
		req.Email,
	).Scan(&exists)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "Email already in use")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var user RegisteredUser
	err = database.PostgresDB.QueryRow(`
		INSERT INTO registered_users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, created_at
	`, req.Name, req.Email, passwordHash).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

// ListRegisteredUsers returns all registered users without password hashes.
func ListRegisteredUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := database.PostgresDB.Query(`
		SELECT id, name, email, created_at FROM registered_users ORDER BY created_at DESC
	`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer rows.Close()

	users := []RegisteredUser{}
	for rows.Next() {
		var user RegisteredUser
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil && err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: users})
}
