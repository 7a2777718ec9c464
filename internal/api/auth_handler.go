package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"quadsolver/internal/auth"
	"quadsolver/internal/database"
	"quadsolver/internal/models"
)

// UserStore это часть хранилища, нужная для регистрации и входа
type UserStore interface {
	CreateUser(login, password string) (int, error)
	GetUser(login string) (*models.User, error)
}

type AuthHandler struct {
	users  UserStore
	tokens *auth.Manager
}

func NewAuthHandler(users UserStore, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if strings.TrimSpace(req.Login) == "" || strings.TrimSpace(req.Password) == "" {
		SendErrorResponse(w, http.StatusBadRequest, "Login and password required")
		return
	}

	if _, err := h.users.CreateUser(req.Login, req.Password); err != nil {
		if errors.Is(err, database.ErrUserExists) {
			SendErrorResponse(w, http.StatusConflict, "User already exists")
			return
		}
		slog.Error("ошибка при регистрации пользователя", "login", req.Login, "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	SendJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login обрабатывает запрос на вход в систему
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := h.users.GetUser(req.Login)
	if err != nil {
		slog.Error("ошибка при получении пользователя", "login", req.Login, "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil || !database.CheckPasswordHash(req.Password, user.Password) {
		SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Login)
	if err != nil {
		slog.Error("ошибка генерации токена", "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	SendJSON(w, http.StatusOK, models.AuthResponse{Token: token})
}

// TokenInfo возвращает время жизни токена
func (h *AuthHandler) TokenInfo(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, models.TokenInfoResponse{ExpirationMinutes: h.tokens.ExpirationMinutes()})
}
