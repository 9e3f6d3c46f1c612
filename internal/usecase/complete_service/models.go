package complete_service

// Request завершение обслуживания
type Request struct {
	BookingID int64
}
