package availability

import "errors"

// ErrInternal возвращается при ошибках хранилищ
var ErrInternal = errors.New("availability.service: internal error")
