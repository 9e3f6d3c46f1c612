package salonservice

import (
	"errors"
	"fmt"
)

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonservice client: internal error")

	// ErrUnavailable сервис не ответил или ответил 5xx
	ErrUnavailable = errors.New("salonservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("salonservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что SalonService недоступен и следует использовать окно работы по умолчанию
	ErrServiceDegraded = errors.New("salonservice unavailable: graceful degradation applied")
)

// StatusError ответ SalonService с кодом, отличным от 200
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("salonservice client: GET %s: status %d: %s", e.Path, e.Code, e.Message)
}

// Unwrap 5xx относит к недоступности сервиса, остальное к некорректному ответу
func (e *StatusError) Unwrap() error {
	if e.Code >= 500 {
		return ErrUnavailable
	}
	return ErrInvalidResponse
}
