package create_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден, не активен или работает в другом салоне
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrInvalidDate возвращается, когда время начала уже прошло
	ErrInvalidDate = errors.New("create_booking: booking time is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в окно работы мастера или задевает перерыв
	ErrOutsideWorkingHours = errors.New("create_booking: outside staff working hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
