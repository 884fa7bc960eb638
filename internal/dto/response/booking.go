package response

import (
	"time"

	"cinema-ticket/internal/data/entity"
)

type BookingResponse struct {
	ID           int64                        `json:"id"`
	BookingCode  string                       `json:"bookingCode"`
	Status       entity.BookingStatus         `json:"status"`
	TotalPrice   float64                      `json:"totalPrice"`
	Tickets      []TicketResponse             `json:"tickets"`
	Refreshments []BookingRefreshmentResponse `json:"refreshments"`
	Showtime     *BookingShowtimeResponse     `json:"showtime,omitempty"`
	User         *BookingUserResponse         `json:"user,omitempty"`
	CreatedAt    time.Time                    `json:"createdAt"`
}

type TicketResponse struct {
	ID        int64   `json:"id"`
	SeatID    int64   `json:"seatId"`
	SeatLabel string  `json:"seatLabel"`
	Price     float64 `json:"price"`
}

type BookingRefreshmentResponse struct {
	RefreshmentID int64   `json:"refreshmentId"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
}

// BookingShowtimeResponse is the showtime as seen from a booking
type BookingShowtimeResponse struct {
	ShowtimeResponse
	MovieTitle string `json:"movieTitle,omitempty"`
	CinemaName string `json:"cinemaName,omitempty"`
	RoomName   string `json:"roomName,omitempty"`
}

type BookingUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BookedSeatsResponse struct {
	ShowtimeID int64   `json:"showtimeId"`
	SeatIDs    []int64 `json:"seatIds"`
}

func BookingToResponse(booking *entity.Booking, tickets []*entity.Ticket, items []*entity.BookingRefreshment) BookingResponse {
	resp := BookingResponse{
		ID:           booking.ID,
		BookingCode:  booking.BookingCode,
		Status:       booking.Status,
		TotalPrice:   booking.TotalPrice,
		Tickets:      make([]TicketResponse, 0, len(tickets)),
		Refreshments: make([]BookingRefreshmentResponse, 0, len(items)),
		CreatedAt:    booking.CreatedAt,
	}

	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, TicketResponse{
			ID:        t.ID,
			SeatID:    t.SeatID,
			SeatLabel: t.SeatLabel,
			Price:     t.Price,
		})
	}

	for _, item := range items {
		resp.Refreshments = append(resp.Refreshments, BookingRefreshmentResponse{
			RefreshmentID: item.RefreshmentID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		})
	}

	return resp
}
