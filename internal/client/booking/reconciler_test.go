package booking

import (
	"context"
	"errors"
	"testing"

	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type fakeSeatSource struct {
	layout    []response.SeatResponse
	booked    []int64
	bookedErr error
	// gate, when set, blocks BookedSeats until closed
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeSeatSource) Showtime(_ context.Context, id int64) (*response.ShowtimeResponse, error) {
	if id != 7 {
		return nil, errors.New("showtime not found")
	}
	return &response.ShowtimeResponse{ID: 7, RoomID: 3}, nil
}

func (f *fakeSeatSource) RoomSeats(_ context.Context, roomID int64) ([]response.SeatResponse, error) {
	return f.layout, nil
}

func (f *fakeSeatSource) BookedSeats(ctx context.Context, showtimeID int64) (*response.BookedSeatsResponse, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	return &response.BookedSeatsResponse{ShowtimeID: showtimeID, SeatIDs: f.booked}, nil
}

func TestReconcilerLoad(t *testing.T) {
	r := NewReconciler(&fakeSeatSource{layout: twoByTwo(), booked: []int64{3}}, zap.NewNop())

	g, err := r.Load(context.Background(), 7)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.ShowtimeID != 7 || g.Len() != 4 || !g.IsBooked(3) || g.IsBooked(1) {
		t.Errorf("grid = %+v", g)
	}
}

func TestReconcilerFailures(t *testing.T) {
	tests := []struct {
		name       string
		src        *fakeSeatSource
		showtimeID int64
	}{
		{"booked seats fail", &fakeSeatSource{layout: twoByTwo(), bookedErr: errors.New("status 500")}, 7},
		{"unknown showtime", &fakeSeatSource{layout: twoByTwo()}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewReconciler(tt.src, zap.NewNop()).Load(context.Background(), tt.showtimeID)
			if !errors.Is(err, ErrSeatsUnavailable) {
				t.Fatalf("Load() error = %v, want ErrSeatsUnavailable", err)
			}
			if g != nil {
				t.Error("partial grid returned")
			}
		})
	}
}

func TestReconcilerEmptyRoom(t *testing.T) {
	g, err := NewReconciler(&fakeSeatSource{}, zap.NewNop()).Load(context.Background(), 7)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Len() != 0 || len(g.Rows) != 0 {
		t.Errorf("grid = %+v, want empty", g)
	}
}

func TestReconcilerStaleLoad(t *testing.T) {
	src := &fakeSeatSource{layout: twoByTwo(), gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	r := NewReconciler(src, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := r.Load(context.Background(), 7)
		done <- err
	}()

	// the first load is parked in BookedSeats until the gate opens
	<-src.entered
	r.Abandon()
	close(src.gate)

	if err := <-done; !errors.Is(err, ErrStaleLoad) {
		t.Fatalf("abandoned Load() error = %v, want ErrStaleLoad", err)
	}

	if _, err := r.Load(context.Background(), 7); err != nil {
		t.Errorf("fresh Load() error = %v", err)
	}
}

func TestReconcilerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSeatSource{layout: twoByTwo(), gate: make(chan struct{})}
	if _, err := NewReconciler(src, zap.NewNop()).Load(ctx, 7); !errors.Is(err, ErrStaleLoad) {
		t.Errorf("Load() error = %v, want ErrStaleLoad", err)
	}
}
