package models

// User представляет модель пользователя в системе
type User struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	Password string `json:"-"` // Не сериализуем пароль в JSON
}

// Credentials это запрос на регистрацию или вход в систему
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse представляет ответ после успешной аутентификации
type AuthResponse struct {
	Token string `json:"token"`
}

type TokenInfoResponse struct {
	ExpirationMinutes int `json:"expirationMinutes"`
}
