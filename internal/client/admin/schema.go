// Package admin provides schema driven CRUD over the back-office
// resources.
package admin

import "cinema-ticket/internal/client/api"

type Field struct {
	Name     string
	Required bool
	// CreateOnly limits Required to create forms.
	CreateOnly bool
}

type Schema struct {
	// Name is the singular display name used in notifications.
	Name   string
	Path   string
	Fields []Field
	// ReadOnly resources support only reads and Actions.
	ReadOnly bool
	// Actions are PUT {Path}/{id}/{action} endpoints.
	Actions []string
	// Invalidates names client query prefixes a successful mutation
	// makes stale.
	Invalidates []string
}

var (
	Movies = Schema{
		Name: "Movie",
		Path: "/api/movies",
		Fields: []Field{
			{Name: "title", Required: true},
			{Name: "description"},
			{Name: "genre"},
			{Name: "posterUrl"},
			{Name: "rating"},
			{Name: "releaseDate", Required: true},
			{Name: "durationMinutes", Required: true},
			{Name: "status", Required: true},
		},
	}

	Cinemas = Schema{
		Name: "Cinema",
		Path: "/api/cinemas",
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "address", Required: true},
			{Name: "city", Required: true},
			{Name: "phone"},
		},
	}

	Rooms = Schema{
		Name: "Room",
		Path: "/api/rooms",
		Fields: []Field{
			{Name: "cinemaId", Required: true, CreateOnly: true},
			{Name: "name", Required: true},
			{Name: "rows", Required: true, CreateOnly: true},
			{Name: "seatsPerRow", Required: true, CreateOnly: true},
			{Name: "vipRows", CreateOnly: true},
		},
	}

	Showtimes = Schema{
		Name: "Showtime",
		Path: "/api/showtimes",
		Fields: []Field{
			{Name: "movieId", Required: true},
			{Name: "roomId", Required: true},
			{Name: "startTime", Required: true},
			{Name: "endTime"},
			{Name: "price", Required: true},
		},
	}

	Users = Schema{
		Name: "User",
		Path: "/api/users",
		Fields: []Field{
			{Name: "username", Required: true, CreateOnly: true},
			{Name: "email", Required: true, CreateOnly: true},
			{Name: "password", Required: true, CreateOnly: true},
			{Name: "fullName"},
			{Name: "phone"},
			{Name: "role", Required: true, CreateOnly: true},
			{Name: "status"},
		},
	}

	Bookings = Schema{
		Name:        "Booking",
		Path:        "/api/bookings",
		ReadOnly:    true,
		Actions:     []string{"confirm", "cancel"},
		Invalidates: []string{api.QueryMyBookings},
	}
)
