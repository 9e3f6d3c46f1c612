package salonhours

import "errors"

var (
	// ErrNotConfigured возвращается, когда у салона нет часов работы на этот день недели
	ErrNotConfigured = errors.New("salonhours: working hours not configured")

	// ErrClosed возвращается, когда день недели отмечен в салоне как выходной
	ErrClosed = errors.New("salonhours: salon is closed")

	// ErrUnavailable возвращается, когда часы работы получить не удалось
	ErrUnavailable = errors.New("salonhours: working hours unavailable")
)
