package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

// SendJSON сериализует ответ до записи статуса. Если сериализация
// не удалась, отвечает 500.
func SendJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("ошибка сериализации ответа", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(models.ErrorResponse{Error: "Internal server error", Kind: quadratic.KindInternal})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func SendErrorResponse(w http.ResponseWriter, status int, message string) {
	SendJSON(w, status, models.ErrorResponse{Error: message})
}

// SendDomainError отвечает 422 с кодом ошибки решателя
func SendDomainError(w http.ResponseWriter, err error) {
	if !IsDomainError(err) {
		SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	SendJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error(), Kind: quadratic.ErrorKind(err)})
}

// IsDomainError сообщает, относится ли ошибка к решателю или проверке ввода
func IsDomainError(err error) bool {
	return errors.Is(err, quadratic.ErrNotANumber) ||
		errors.Is(err, quadratic.ErrInsufficientPrecision) ||
		errors.Is(err, quadratic.ErrInvalidState) ||
		errors.Is(err, quadratic.ErrNotQuadratic)
}

// AuthError используется как обработчик отказа в auth.Middleware
func AuthError(w http.ResponseWriter, status int, err error) {
	SendErrorResponse(w, status, "Unauthorized: "+err.Error())
}
