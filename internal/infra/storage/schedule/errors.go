package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда для мастера нет окна работы на дату
	ErrWindowNotFound = errors.New("schedule.repository: work window not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("schedule.repository: staff not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна услуга не найдена
	ErrServiceNotFound = errors.New("schedule.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
