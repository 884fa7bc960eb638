package booking

import (
	"cmp"
	"fmt"
	"slices"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/dto/response"
)

type SeatState int

const (
	SeatAvailable SeatState = iota
	SeatSelected
	SeatBooked
)

func (s SeatState) String() string {
	switch s {
	case SeatAvailable:
		return "available"
	case SeatSelected:
		return "selected"
	case SeatBooked:
		return "booked"
	default:
		return fmt.Sprintf("SeatState(%d)", int(s))
	}
}

type GridSeat struct {
	ID   int64
	Row  string
	Col  int
	Type entity.SeatType
}

func (s GridSeat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Col)
}

type GridRow struct {
	Label string
	Seats []GridSeat
}

// SeatGrid merges a room's fixed layout with the booked-seat set of one
// showtime. Rows are ordered by label, seats by column.
type SeatGrid struct {
	ShowtimeID int64
	Rows       []GridRow

	seats  map[int64]GridSeat
	booked map[int64]struct{}
}

func NewSeatGrid(showtimeID int64, layout []response.SeatResponse, bookedIDs []int64) *SeatGrid {
	seats := make([]GridSeat, 0, len(layout))
	for _, s := range layout {
		seats = append(seats, GridSeat{ID: s.ID, Row: s.Row, Col: s.Col, Type: s.Type})
	}
	slices.SortFunc(seats, func(a, b GridSeat) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})

	g := &SeatGrid{
		ShowtimeID: showtimeID,
		seats:      make(map[int64]GridSeat, len(seats)),
		booked:     make(map[int64]struct{}, len(bookedIDs)),
	}

	for _, s := range seats {
		g.seats[s.ID] = s
		if n := len(g.Rows); n == 0 || g.Rows[n-1].Label != s.Row {
			g.Rows = append(g.Rows, GridRow{Label: s.Row})
		}
		last := &g.Rows[len(g.Rows)-1]
		last.Seats = append(last.Seats, s)
	}

	for _, id := range bookedIDs {
		g.booked[id] = struct{}{}
	}
	return g
}

func (g *SeatGrid) Len() int {
	return len(g.seats)
}

func (g *SeatGrid) Has(id int64) bool {
	_, ok := g.seats[id]
	return ok
}

func (g *SeatGrid) IsBooked(id int64) bool {
	_, ok := g.booked[id]
	return ok
}

func (g *SeatGrid) Seat(id int64) (GridSeat, bool) {
	s, ok := g.seats[id]
	return s, ok
}

// StateOf resolves a seat's render state. Booked wins over selected.
func (g *SeatGrid) StateOf(id int64, d *Draft) SeatState {
	if g.IsBooked(id) {
		return SeatBooked
	}
	if d != nil && d.IsSelected(id) {
		return SeatSelected
	}
	return SeatAvailable
}
