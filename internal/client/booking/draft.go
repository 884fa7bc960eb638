package booking

import "slices"

type RefreshmentLine struct {
	ID       int64
	Quantity int
}

// Draft is the unpersisted state of one booking in progress. It lives
// exactly as long as its wizard.
type Draft struct {
	ShowtimeID   int64
	seats        map[int64]struct{}
	refreshments []RefreshmentLine
}

func NewDraft(showtimeID int64) *Draft {
	return &Draft{
		ShowtimeID: showtimeID,
		seats:      make(map[int64]struct{}),
	}
}

// toggleSeat flips seat membership and reports whether it is now selected.
func (d *Draft) toggleSeat(id int64) bool {
	if _, ok := d.seats[id]; ok {
		delete(d.seats, id)
		return false
	}
	d.seats[id] = struct{}{}
	return true
}

func (d *Draft) dropSeat(id int64) bool {
	if _, ok := d.seats[id]; !ok {
		return false
	}
	delete(d.seats, id)
	return true
}

func (d *Draft) IsSelected(id int64) bool {
	_, ok := d.seats[id]
	return ok
}

func (d *Draft) SeatCount() int {
	return len(d.seats)
}

// SeatIDs returns the selection in ascending order.
func (d *Draft) SeatIDs() []int64 {
	ids := make([]int64, 0, len(d.seats))
	for id := range d.seats {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SetRefreshment sets an explicit quantity. Zero removes the line; a later
// non-zero quantity appends a new line.
func (d *Draft) SetRefreshment(id int64, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}

	i := slices.IndexFunc(d.refreshments, func(l RefreshmentLine) bool { return l.ID == id })
	switch {
	case qty == 0 && i >= 0:
		d.refreshments = slices.Delete(d.refreshments, i, i+1)
	case qty == 0:
	case i >= 0:
		d.refreshments[i].Quantity = qty
	default:
		d.refreshments = append(d.refreshments, RefreshmentLine{ID: id, Quantity: qty})
	}
	return nil
}

// Refreshments returns a copy of the selected lines in insertion order.
func (d *Draft) Refreshments() []RefreshmentLine {
	return slices.Clone(d.refreshments)
}
