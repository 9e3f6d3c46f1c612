package duplicate_booking

// Request копия бронирования на то же время к другому мастеру
type Request struct {
	BookingID  int64
	StaffID    *int64 // мастер копии; nil - первый свободный по приоритету
	CustomerID *int64 // клиент копии; nil - клиент исходного бронирования
}
