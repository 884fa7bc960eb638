package request

type CreateBookingRequest struct {
	ShowtimeID   int64                `json:"showtimeId" validate:"required,gt=0"`
	SeatIDs      []int64              `json:"seatIds" validate:"required,min=1,max=10,unique,dive,gt=0"`
	Refreshments []RefreshmentRequest `json:"refreshments,omitempty" validate:"omitempty,unique=ID,dive"`
}

type RefreshmentRequest struct {
	ID       int64 `json:"id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,min=1,max=20"`
}
