package request

type CinemaRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Address string  `json:"address" validate:"required,min=1,max=200"`
	City    string  `json:"city" validate:"required,min=1,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type RoomRequest struct {
	CinemaID    int64  `json:"cinemaId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Rows        int    `json:"rows" validate:"required,min=1,max=26"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,min=1,max=50"`
	// VIPRows lists row labels whose seats are VIP, e.g. ["H", "I"]
	VIPRows []string `json:"vipRows,omitempty" validate:"omitempty,dive,len=1,uppercase"`
}

type RoomUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
