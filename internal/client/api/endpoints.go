package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"
)

func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	return q
}

// ==================== AUTH ====================

func (c *Client) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	var out response.LoginResponse
	if err := c.Post(ctx, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := c.Post(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := c.Get(ctx, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := c.Put(ctx, "/api/auth/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, req *request.ChangePasswordRequest) error {
	return c.Put(ctx, "/api/auth/change-password", req, nil)
}

// ==================== MOVIES ====================

func (c *Client) Movies(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.MovieResponse], error) {
	var out response.PaginatedResponse[response.MovieResponse]
	if err := c.Get(ctx, "/api/movies", pageQuery(page, perPage), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchMovies(ctx context.Context, keyword string, page, perPage int) (*response.PaginatedResponse[response.MovieResponse], error) {
	q := pageQuery(page, perPage)
	q.Set("q", keyword)

	var out response.PaginatedResponse[response.MovieResponse]
	if err := c.Get(ctx, "/api/movies/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Movie(ctx context.Context, id int64) (*response.MovieResponse, error) {
	var out response.MovieResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/movies/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MovieActors(ctx context.Context, id int64) ([]response.ActorResponse, error) {
	var out []response.ActorResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/movies/%d/actors", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MovieReviews(ctx context.Context, id int64, page, perPage int) (*response.PaginatedResponse[response.ReviewResponse], error) {
	var out response.PaginatedResponse[response.ReviewResponse]
	if err := c.Get(ctx, fmt.Sprintf("/api/movies/%d/reviews", id), pageQuery(page, perPage), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== SHOWTIMES ====================

func (c *Client) Showtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error) {
	var out response.ShowtimeResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/showtimes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ShowtimesByMovie(ctx context.Context, movieID int64) ([]response.ShowtimeResponse, error) {
	var out []response.ShowtimeResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/showtimes/movie/%d", movieID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShowtimesByDate takes a yyyy-MM-dd date.
func (c *Client) ShowtimesByDate(ctx context.Context, date string) ([]response.ShowtimeResponse, error) {
	var out []response.ShowtimeResponse
	if err := c.Get(ctx, "/api/showtimes/date/"+url.PathEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ==================== CINEMAS & ROOMS ====================

func (c *Client) Cinemas(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.CinemaResponse], error) {
	var out response.PaginatedResponse[response.CinemaResponse]
	if err := c.Get(ctx, "/api/cinemas", pageQuery(page, perPage), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RoomSeats(ctx context.Context, roomID int64) ([]response.SeatResponse, error) {
	var out []response.SeatResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/rooms/%d/seats", roomID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Refreshments(ctx context.Context) ([]response.RefreshmentResponse, error) {
	return cached(c.cache, QueryRefreshments, func() ([]response.RefreshmentResponse, error) {
		var out []response.RefreshmentResponse
		if err := c.Get(ctx, "/api/refreshments", nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// ==================== BOOKINGS ====================

// BookedSeats is never cached: the set changes with every booking.
func (c *Client) BookedSeats(ctx context.Context, showtimeID int64) (*response.BookedSeatsResponse, error) {
	var out response.BookedSeatsResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/bookings/showtime/%d/seats", showtimeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	var out response.BookingResponse
	if err := c.Post(ctx, "/api/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyBookings is served from the query cache until a booking is created.
func (c *Client) MyBookings(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	key := fmt.Sprintf("%s:%d:%d", QueryMyBookings, page, perPage)
	return cached(c.cache, key, func() (*response.PaginatedResponse[response.BookingResponse], error) {
		var out response.PaginatedResponse[response.BookingResponse]
		if err := c.Get(ctx, "/api/bookings", pageQuery(page, perPage), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Client) Booking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	var out response.BookingResponse
	if err := c.Get(ctx, fmt.Sprintf("/api/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
