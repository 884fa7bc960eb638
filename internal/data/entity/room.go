package entity

type Room struct {
	Base
	CinemaID    int64  `db:"cinema_id"`
	Name        string `db:"name"`
	Rows        int    `db:"total_rows"`
	SeatsPerRow int    `db:"seats_per_row"`
}

func (r *Room) TotalSeats() int {
	return r.Rows * r.SeatsPerRow
}
