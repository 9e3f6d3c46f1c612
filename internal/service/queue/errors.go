package queue

import "errors"

var (
	// ErrInternal возвращается при ошибке хранилища счётчиков
	ErrInternal = errors.New("queue.service: internal error")
)
