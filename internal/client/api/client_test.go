package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "/api"}, zap.NewNop()); err == nil {
		t.Fatal("NewClient(/api) succeeded, want error")
	}
}

func TestClientSignsAndDecodes(t *testing.T) {
	var gotAuth, gotPath, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		utils.ResponseSuccess(w, "success", response.ShowtimeResponse{ID: 7, RoomID: 3, Price: 50000})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api")
	c.SetTokenSource(staticToken("tok"))

	st, err := c.Showtime(context.Background(), 7)
	if err != nil {
		t.Fatalf("Showtime() error = %v", err)
	}

	if st.ID != 7 || st.RoomID != 3 || st.Price != 50000 {
		t.Errorf("showtime = %+v", st)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if gotPath != "/api/showtimes/7" {
		t.Errorf("path = %q, want /api/showtimes/7", gotPath)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID not set")
	}
}

func TestClientAnonymousHasNoAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		utils.ResponseSuccess(w, "success", nil)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetTokenSource(staticToken(""))
	if err := c.Get(context.Background(), "/api/movies", nil, nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none", gotAuth)
	}
}

func TestCollapseAPIPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/api/movies", "/api/movies"},
		{"/api/api/movies", "/api/movies"},
		{"/api/api/api/movies", "/api/movies"},
		{"/api/api", "/api"},
		{"/v1/api/api/bookings", "/v1/api/bookings"},
		{"/apiary/api/x", "/apiary/api/x"},
	}

	for _, tt := range tests {
		if got := collapseAPIPrefix(tt.in); got != tt.want {
			t.Errorf("collapseAPIPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClientUnauthorizedHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseUnauthorized(w, "Invalid or expired token")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	var calls atomic.Int32
	c.OnUnauthorized(func() { calls.Add(1) })

	_, err := c.Me(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsUnauthorized() {
		t.Fatalf("Me() error = %v, want 401 APIError", err)
	}
	if apiErr.Message != "Invalid or expired token" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if calls.Load() != 1 {
		t.Errorf("hook calls = %d, want 1", calls.Load())
	}
}

func TestClientRetries(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		statuses  []int
		wantCalls int32
		wantErr   bool
	}{
		{"get recovers after one 500", http.MethodGet, []int{500, 200}, 2, false},
		{"get gives up after two 503", http.MethodGet, []int{503, 503, 200}, 2, true},
		{"get does not retry 404", http.MethodGet, []int{404, 200}, 1, true},
		{"post is never retried", http.MethodPost, []int{500, 200}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				status := tt.statuses[n-1]
				if status == http.StatusOK {
					utils.ResponseSuccess(w, "success", nil)
					return
				}
				utils.ResponseJSON(w, status, false, "boom", nil, nil)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)

			var err error
			if tt.method == http.MethodGet {
				err = c.Get(context.Background(), "/api/movies", nil, nil)
			} else {
				err = c.Post(context.Background(), "/api/bookings", map[string]int{"showtimeId": 1}, nil)
			}

			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("server calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.Movie(context.Background(), 1)

	if !IsNetwork(err) {
		t.Fatalf("error = %v, want network error", err)
	}
	if got := ErrorMessage(err, NetworkMessage); got != NetworkMessage {
		t.Errorf("ErrorMessage() = %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &APIError{Status: 409, Message: "Seat already booked"}, "Seat already booked"},
		{"empty server message", &APIError{Status: 500}, "fallback"},
		{"plain error", errors.New("x"), "fallback"},
	}

	for _, tt := range tests {
		if got := ErrorMessage(tt.err, "fallback"); got != tt.want {
			t.Errorf("%s: ErrorMessage() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMyBookingsCachedUntilInvalidated(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.Method == http.MethodPost {
			utils.ResponseCreated(w, "Booking created", response.BookingResponse{ID: 9, BookingCode: "BOOK-9"})
			return
		}
		utils.ResponseSuccess(w, "success", response.NewPaginatedResponse([]response.BookingResponse{{ID: 1}}, 1, 10, 1))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	for range 2 {
		page, err := c.MyBookings(ctx, 1, 10)
		if err != nil {
			t.Fatalf("MyBookings() error = %v", err)
		}
		if len(page.Items) != 1 {
			t.Fatalf("items = %d, want 1", len(page.Items))
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("server calls = %d, want 1 after cached read", calls.Load())
	}

	if _, err := c.CreateBooking(ctx, &request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}}); err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	c.InvalidateQueries(QueryMyBookings)

	if _, err := c.MyBookings(ctx, 1, 10); err != nil {
		t.Fatalf("MyBookings() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server calls = %d, want 3 after invalidation", calls.Load())
	}
}

func TestBookedSeatsNeverCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		utils.ResponseSuccess(w, "success", response.BookedSeatsResponse{ShowtimeID: 7, SeatIDs: []int64{2}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	for range 2 {
		if _, err := c.BookedSeats(context.Background(), 7); err != nil {
			t.Fatalf("BookedSeats() error = %v", err)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
}
