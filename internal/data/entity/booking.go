package entity

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// CanTransitionTo reports whether an admin may move a booking to next.
// Only pending bookings change state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusPending &&
		(next == BookingStatusPaid || next == BookingStatusCancelled)
}

type Booking struct {
	Base
	BookingCode string        `db:"booking_code"`
	UserID      int64         `db:"user_id"`
	ShowtimeID  int64         `db:"showtime_id"`
	TotalPrice  float64       `db:"total_price"`
	Status      BookingStatus `db:"status"`
}

// Ticket is one seat of a booking.
type Ticket struct {
	BaseSimple
	BookingID int64   `db:"booking_id"`
	SeatID    int64   `db:"seat_id"`
	SeatLabel string  `db:"seat_label"`
	Price     float64 `db:"price"`
}

type BookingRefreshment struct {
	BookingID     int64   `db:"booking_id"`
	RefreshmentID int64   `db:"refreshment_id"`
	Name          string  `db:"name"`
	Quantity      int     `db:"quantity"`
	UnitPrice     float64 `db:"unit_price"`
}
