package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgValidation       = "некорректные данные запроса"
	msgConflict         = "выбранный интервал уже занят"
	msgInvalidStatus    = "статус бронирования не допускает это действие"
	msgNoStaffAvailable = "нет свободных мастеров на это время"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error                string `json:"error"`
	Field                string `json:"field,omitempty"`
	CurrentStatus        string `json:"currentStatus,omitempty"`
	ConflictingBookingID *int64 `json:"conflictingBookingId,omitempty"`
}

// DecodeJSON разбирает тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отвечает на типизированные ошибки движка:
// валидация -> 400, конфликт, недопустимый статус и отсутствие мастеров -> 409.
// Возвращает false, если ошибка к ним не относится
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError
	var statusErr *domain.InvalidStatusError

	switch {
	case errors.As(err, &validationErr):
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: msgValidation + ": " + validationErr.Field + " " + validationErr.Reason,
			Field: validationErr.Field,
		})
	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, msgValidation)
	case errors.As(err, &conflictErr):
		resp := ErrorResponse{Error: msgConflict}
		if conflictErr.Existing != nil {
			id := conflictErr.Existing.ID
			resp.ConflictingBookingID = &id
		}
		RespondJSON(w, http.StatusConflict, resp)
	case errors.Is(err, domain.ErrConflict):
		RespondError(w, http.StatusConflict, msgConflict)
	case errors.As(err, &statusErr):
		RespondJSON(w, http.StatusConflict, ErrorResponse{
			Error:         msgInvalidStatus,
			CurrentStatus: string(statusErr.Current),
		})
	case errors.Is(err, domain.ErrNoStaffAvailable):
		RespondError(w, http.StatusConflict, msgNoStaffAvailable)
	default:
		return false
	}
	return true
}
