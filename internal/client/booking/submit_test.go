package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cinema-ticket/internal/client/api"
	"cinema-ticket/internal/client/ui"

	"go.uber.org/zap"
)

func TestSubmitRejectsEmptySelection(t *testing.T) {
	rec := &ui.Recorder{}
	creator := &fakeCreator{}

	_, err := NewSubmitter(creator, rec, rec, zap.NewNop()).Submit(context.Background(), 7, nil, nil)
	if !errors.Is(err, ErrNoSeatsSelected) {
		t.Fatalf("Submit() error = %v", err)
	}
	if err.Error() != "please select at least one seat" {
		t.Errorf("message = %q", err.Error())
	}
	if creator.calls != 0 || len(rec.Toasts()) != 0 || len(rec.Routes()) != 0 {
		t.Errorf("calls = %d toasts = %v routes = %v", creator.calls, rec.Toasts(), rec.Routes())
	}
}

func TestSubmitValidatesLocally(t *testing.T) {
	creator := &fakeCreator{}
	rec := &ui.Recorder{}
	seats := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	_, err := NewSubmitter(creator, rec, rec, zap.NewNop()).Submit(context.Background(), 7, seats, nil)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["SeatIDs"] == "" {
		t.Fatalf("Submit() error = %v, want SeatIDs validation error", err)
	}
	if creator.calls != 0 {
		t.Errorf("CreateBooking calls = %d, want 0", creator.calls)
	}
}

func TestSubmitSuccess(t *testing.T) {
	creator := &fakeCreator{}
	rec := &ui.Recorder{}

	booking, err := NewSubmitter(creator, rec, rec, zap.NewNop()).
		Submit(context.Background(), 7, []int64{1, 3}, []RefreshmentLine{{ID: 5, Quantity: 2}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if creator.calls != 1 {
		t.Errorf("CreateBooking calls = %d, want 1", creator.calls)
	}
	if booking.TotalPrice != 100000 {
		t.Errorf("TotalPrice = %v", booking.TotalPrice)
	}
	if len(creator.invalid) != 1 || creator.invalid[0] != api.QueryMyBookings {
		t.Errorf("invalidated = %v", creator.invalid)
	}
	if rec.LastRoute() != ui.RouteBookingHistory {
		t.Errorf("route = %q", rec.LastRoute())
	}
	toasts := rec.Toasts()
	if len(toasts) != 1 || toasts[0].Level != "success" || toasts[0].Message != "Booking BOOK-9 created" {
		t.Errorf("toasts = %v", toasts)
	}
}

func TestSubmitFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &api.APIError{Status: http.StatusConflict, Message: "Seat A1 already booked"}, "Seat A1 already booked"},
		{"no server message", &api.APIError{Status: http.StatusInternalServerError}, FailedBookingMessage},
		{"network", fmt.Errorf("%w: POST /api/bookings: refused", api.ErrNetwork), api.NetworkMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{err: tt.err}
			rec := &ui.Recorder{}

			_, err := NewSubmitter(creator, rec, rec, zap.NewNop()).Submit(context.Background(), 7, []int64{1}, nil)

			var subErr *SubmitError
			if !errors.As(err, &subErr) || subErr.Message != tt.want {
				t.Fatalf("Submit() error = %v, want message %q", err, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("SubmitError does not wrap the cause")
			}
			if creator.calls != 1 {
				t.Errorf("CreateBooking calls = %d, want exactly 1", creator.calls)
			}
			if len(creator.invalid) != 0 || len(rec.Routes()) != 0 {
				t.Errorf("failed submit invalidated %v or navigated %v", creator.invalid, rec.Routes())
			}
			toasts := rec.Toasts()
			if len(toasts) != 1 || toasts[0].Level != "error" || toasts[0].Message != tt.want {
				t.Errorf("toasts = %v", toasts)
			}
		})
	}
}
