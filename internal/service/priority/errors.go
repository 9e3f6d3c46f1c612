package priority

import "errors"

var (
	// ErrStaffNotFound возвращается, если мастер не найден
	ErrStaffNotFound = errors.New("priority.service: staff not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("priority.service: internal error")
)
