package start_service

// Request начало обслуживания
type Request struct {
	BookingID int64
}
