package cancel_booking

// Request отмена бронирования
type Request struct {
	BookingID int64
	Reason    *string
}
