package conflicts

import "errors"

// ErrInternal возвращается при ошибках чтения бронирований
var ErrInternal = errors.New("conflicts.service: internal error")
