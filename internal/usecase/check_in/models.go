package check_in

// Request отметка о приходе клиента
type Request struct {
	BookingID int64
}
