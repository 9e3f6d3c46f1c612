package priority

import "errors"

var (
	// ErrPriorityNotFound возвращается, когда у мастера нет сохранённого приоритета
	ErrPriorityNotFound = errors.New("priority.repository: priority not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("priority.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("priority.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("priority.repository: failed to scan row")
)
