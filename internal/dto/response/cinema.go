package response

import (
	"time"

	"cinema-ticket/internal/data/entity"
)

type CinemaResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RoomResponse struct {
	ID          int64     `json:"id"`
	CinemaID    int64     `json:"cinemaId"`
	Name        string    `json:"name"`
	Rows        int       `json:"rows"`
	SeatsPerRow int       `json:"seatsPerRow"`
	TotalSeats  int       `json:"totalSeats"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SeatResponse struct {
	ID     int64           `json:"id"`
	RoomID int64           `json:"roomId"`
	Row    string          `json:"row"`
	Col    int             `json:"col"`
	Type   entity.SeatType `json:"type"`
}

type RefreshmentResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func CinemaToResponse(cinema *entity.Cinema) CinemaResponse {
	return CinemaResponse{
		ID:        cinema.ID,
		Name:      cinema.Name,
		Address:   cinema.Address,
		City:      cinema.City,
		Phone:     cinema.Phone,
		CreatedAt: cinema.CreatedAt,
		UpdatedAt: cinema.UpdatedAt,
	}
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		CinemaID:    room.CinemaID,
		Name:        room.Name,
		Rows:        room.Rows,
		SeatsPerRow: room.SeatsPerRow,
		TotalSeats:  room.TotalSeats(),
		CreatedAt:   room.CreatedAt,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     seat.ID,
		RoomID: seat.RoomID,
		Row:    seat.Row,
		Col:    seat.Col,
		Type:   seat.Type,
	}
}

func RefreshmentToResponse(item *entity.Refreshment) RefreshmentResponse {
	return RefreshmentResponse{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price,
	}
}
