package shiftboard

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках сборки доски
	ErrInternal = errors.New("shiftboard.service: internal error")
)
