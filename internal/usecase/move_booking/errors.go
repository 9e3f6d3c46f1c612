package move_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("move_booking: booking not found")

	// ErrStaffNotFound возвращается, когда новый мастер не найден или работает в другом салоне
	ErrStaffNotFound = errors.New("move_booking: staff not found")

	// ErrInvalidDate возвращается, когда новое время уже прошло
	ErrInvalidDate = errors.New("move_booking: booking time is in the past")

	// ErrOutsideWorkingHours возвращается, когда новый интервал не помещается в окно работы мастера
	ErrOutsideWorkingHours = errors.New("move_booking: outside staff working hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_booking: internal error")
)
