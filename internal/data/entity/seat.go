package entity

import "fmt"

type SeatType string

const (
	SeatTypeStandard SeatType = "STANDARD"
	SeatTypeVIP      SeatType = "VIP"
	SeatTypeCouple   SeatType = "COUPLE"
)

// Seat is static per room. Booking never mutates it.
type Seat struct {
	BaseSimple
	RoomID int64    `db:"room_id"`
	Row    string   `db:"seat_row"` // A, B, C, etc.
	Col    int      `db:"seat_col"` // 1, 2, 3, etc.
	Type   SeatType `db:"seat_type"`
}

func (s *Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Col)
}
