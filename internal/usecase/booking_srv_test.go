package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/event"

	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type bookingFixture struct {
	svc       *bookingService
	showtimes *fakeShowtimes
	bookings  *fakeBookings
	publisher *recordingPublisher
}

func newBookingFixture() *bookingFixture {
	showtimes := &fakeShowtimes{byID: map[int64]*entity.Showtime{
		7: {
			Base:      entity.Base{ID: 7},
			MovieID:   1,
			RoomID:    3,
			CinemaID:  2,
			StartTime: testNow.Add(2 * time.Hour),
			EndTime:   testNow.Add(4 * time.Hour),
			Price:     50000,
		},
		8: {
			Base:      entity.Base{ID: 8},
			MovieID:   1,
			RoomID:    3,
			CinemaID:  2,
			StartTime: testNow.Add(-time.Minute),
			EndTime:   testNow.Add(time.Hour),
			Price:     50000,
		},
	}}
	seats := &fakeSeats{seats: []*entity.Seat{
		{BaseSimple: entity.BaseSimple{ID: 11}, RoomID: 3, Row: "A", Col: 1},
		{BaseSimple: entity.BaseSimple{ID: 12}, RoomID: 3, Row: "A", Col: 2},
		{BaseSimple: entity.BaseSimple{ID: 99}, RoomID: 4, Row: "A", Col: 1},
	}}
	refreshments := &fakeRefreshments{items: []*entity.Refreshment{
		{Base: entity.Base{ID: 5}, Name: "Popcorn", Price: 25000, IsActive: true},
	}}
	bookings := &fakeBookings{byID: map[int64]*entity.Booking{}}
	publisher := &recordingPublisher{}

	repo := &repository.Repository{
		User:        &fakeUsers{},
		Movie:       &fakeMovies{byID: map[int64]*entity.Movie{1: {Base: entity.Base{ID: 1}, Title: "Dune", DurationMinutes: 155}}},
		Cinema:      &fakeCinemas{},
		Room:        &fakeRooms{byID: map[int64]*entity.Room{3: {Base: entity.Base{ID: 3}, CinemaID: 2, Name: "Studio 1"}}},
		Seat:        seats,
		Showtime:    showtimes,
		Refreshment: refreshments,
		Booking:     bookings,
	}

	return &bookingFixture{
		svc: &bookingService{
			repo:      repo,
			publisher: publisher,
			log:       zap.NewNop(),
			now:       func() time.Time { return testNow },
		},
		showtimes: showtimes,
		bookings:  bookings,
		publisher: publisher,
	}
}

func TestBookingCreate(t *testing.T) {
	f := newBookingFixture()

	resp, err := f.svc.Create(context.Background(), 42, &request.CreateBookingRequest{
		ShowtimeID:   7,
		SeatIDs:      []int64{11, 12},
		Refreshments: []request.RefreshmentRequest{{ID: 5, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.TotalPrice != 150000 {
		t.Errorf("TotalPrice = %v, want 150000", resp.TotalPrice)
	}
	if resp.Status != entity.BookingStatusPending {
		t.Errorf("Status = %s, want PENDING", resp.Status)
	}
	if !strings.HasPrefix(resp.BookingCode, "BOOK-20260314-100000-") {
		t.Errorf("BookingCode = %q", resp.BookingCode)
	}
	if len(resp.Tickets) != 2 || resp.Tickets[0].SeatLabel != "A1" {
		t.Errorf("Tickets = %+v", resp.Tickets)
	}
	if resp.Showtime == nil || resp.Showtime.MovieTitle != "Dune" || resp.Showtime.RoomName != "Studio 1" {
		t.Errorf("Showtime snapshot = %+v", resp.Showtime)
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Errorf("User snapshot = %+v", resp.User)
	}

	if f.bookings.created == nil || f.bookings.created.UserID != 42 {
		t.Fatalf("booking not persisted for user 42: %+v", f.bookings.created)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != event.TypeBookingCreated {
		t.Errorf("published events = %+v", f.publisher.events)
	}
}

func TestBookingCreateRejections(t *testing.T) {
	tests := []struct {
		name      string
		req       request.CreateBookingRequest
		createErr error
		want      error
	}{
		{
			name: "no seats",
			req:  request.CreateBookingRequest{ShowtimeID: 7},
			want: ErrInvalidInput,
		},
		{
			name: "unknown showtime",
			req:  request.CreateBookingRequest{ShowtimeID: 70, SeatIDs: []int64{11}},
			want: ErrNotFound,
		},
		{
			name: "showtime started",
			req:  request.CreateBookingRequest{ShowtimeID: 8, SeatIDs: []int64{11}},
			want: ErrInvalidInput,
		},
		{
			name: "seat from another room",
			req:  request.CreateBookingRequest{ShowtimeID: 7, SeatIDs: []int64{11, 99}},
			want: ErrInvalidInput,
		},
		{
			name: "unknown refreshment",
			req: request.CreateBookingRequest{
				ShowtimeID:   7,
				SeatIDs:      []int64{11},
				Refreshments: []request.RefreshmentRequest{{ID: 6, Quantity: 1}},
			},
			want: ErrInvalidInput,
		},
		{
			name:      "seat taken concurrently",
			req:       request.CreateBookingRequest{ShowtimeID: 7, SeatIDs: []int64{11}},
			createErr: fmt.Errorf("insert ticket: %w", repository.ErrConflict),
			want:      ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			f.bookings.createErr = tt.createErr

			_, err := f.svc.Create(context.Background(), 42, &tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Create() error = %v, want %v", err, tt.want)
			}
			if len(f.publisher.events) != 0 {
				t.Errorf("rejected booking published %d events", len(f.publisher.events))
			}
		})
	}
}

func TestBookingCreateRetriesDuplicateCode(t *testing.T) {
	dup := fmt.Errorf("create booking: %w", repository.ErrDuplicateCode)
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"first code free", nil, 1, false},
		{"two collisions then free", []error{dup, dup}, 3, false},
		{"every code taken", []error{dup, dup, dup}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			f.bookings.createErrs = tt.errs

			resp, err := f.svc.Create(context.Background(), 42, &request.CreateBookingRequest{ShowtimeID: 7, SeatIDs: []int64{11}})
			if len(f.bookings.codes) != tt.wantCalls {
				t.Fatalf("create calls = %d, want %d", len(f.bookings.codes), tt.wantCalls)
			}
			for _, code := range f.bookings.codes {
				if !strings.HasPrefix(code, "BOOK-20260314-100000-") {
					t.Errorf("code = %q", code)
				}
			}

			if tt.wantErr {
				if !errors.Is(err, repository.ErrDuplicateCode) {
					t.Fatalf("Create() error = %v, want ErrDuplicateCode", err)
				}
				if len(f.publisher.events) != 0 {
					t.Errorf("failed booking published %d events", len(f.publisher.events))
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if last := f.bookings.codes[len(f.bookings.codes)-1]; resp.BookingCode != last {
				t.Errorf("BookingCode = %q, want the stored %q", resp.BookingCode, last)
			}
		})
	}
}

func TestBookingGetOwnership(t *testing.T) {
	f := newBookingFixture()
	f.bookings.byID[1] = &entity.Booking{Base: entity.Base{ID: 1}, UserID: 42, ShowtimeID: 7, Status: entity.BookingStatusPending}

	tests := []struct {
		name   string
		viewer Viewer
		want   error
	}{
		{"owner", Viewer{UserID: 42}, nil},
		{"admin", Viewer{UserID: 1, Admin: true}, nil},
		{"other user", Viewer{UserID: 43}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Get(context.Background(), tt.viewer, 1)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Get() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := f.svc.Get(context.Background(), Viewer{UserID: 42}, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      entity.BookingStatus
		confirm   bool
		statusErr error
		want      error
		wantState entity.BookingStatus
	}{
		{"confirm pending", entity.BookingStatusPending, true, nil, nil, entity.BookingStatusPaid},
		{"cancel pending", entity.BookingStatusPending, false, nil, nil, entity.BookingStatusCancelled},
		{"confirm paid", entity.BookingStatusPaid, true, nil, ErrConflict, entity.BookingStatusPaid},
		{"cancel cancelled", entity.BookingStatusCancelled, false, nil, ErrConflict, entity.BookingStatusCancelled},
		{"lost race", entity.BookingStatusPending, true, repository.ErrConflict, ErrConflict, entity.BookingStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			f.bookings.statusErr = tt.statusErr
			f.bookings.byID[1] = &entity.Booking{Base: entity.Base{ID: 1}, BookingCode: "BOOK-1", UserID: 42, ShowtimeID: 7, Status: tt.from}

			var err error
			if tt.confirm {
				_, err = f.svc.Confirm(context.Background(), 1)
			} else {
				_, err = f.svc.Cancel(context.Background(), 1)
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if got := f.bookings.byID[1].Status; got != tt.wantState {
				t.Errorf("stored status = %s, want %s", got, tt.wantState)
			}
			if tt.want == nil && len(f.publisher.events) != 1 {
				t.Errorf("published %d events, want 1", len(f.publisher.events))
			}
		})
	}
}

func TestMissingIDs(t *testing.T) {
	found := []*entity.Seat{
		{BaseSimple: entity.BaseSimple{ID: 2}},
		{BaseSimple: entity.BaseSimple{ID: 4}},
	}

	got := missingIDs([]int64{1, 2, 3, 4}, found, func(s *entity.Seat) int64 { return s.ID })
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("missingIDs() = %v, want [1 3]", got)
	}
}
