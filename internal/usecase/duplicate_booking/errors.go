package duplicate_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда исходное бронирование не найдено
	ErrBookingNotFound = errors.New("duplicate_booking: booking not found")

	// ErrStaffNotFound возвращается, когда указанный мастер не найден или работает в другом салоне
	ErrStaffNotFound = errors.New("duplicate_booking: staff not found")

	// ErrServiceNotOffered возвращается, когда указанный мастер не оказывает услуги бронирования
	ErrServiceNotOffered = errors.New("duplicate_booking: staff does not offer the booked services")

	// ErrInvalidDate возвращается, когда время исходного бронирования уже прошло
	ErrInvalidDate = errors.New("duplicate_booking: booking time is in the past")

	// ErrOutsideWorkingHours возвращается, когда указанный мастер не работает в это время
	ErrOutsideWorkingHours = errors.New("duplicate_booking: outside staff working hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("duplicate_booking: internal error")
)
