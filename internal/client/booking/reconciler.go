package booking

import (
	"context"
	"fmt"
	"sync/atomic"

	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SeatSource is the subset of the REST client the reconciler reads.
type SeatSource interface {
	Showtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error)
	RoomSeats(ctx context.Context, roomID int64) ([]response.SeatResponse, error)
	BookedSeats(ctx context.Context, showtimeID int64) (*response.BookedSeatsResponse, error)
}

// Reconciler builds seat grids. Only the most recent Load may deliver a
// grid; earlier loads still in flight return ErrStaleLoad.
type Reconciler struct {
	src SeatSource
	log *zap.Logger
	gen atomic.Uint64
}

func NewReconciler(src SeatSource, log *zap.Logger) *Reconciler {
	return &Reconciler{
		src: src,
		log: log.With(zap.String("component", "seat-reconciler")),
	}
}

// Abandon discards the result of any load in flight.
func (r *Reconciler) Abandon() {
	r.gen.Add(1)
}

// Load resolves the showtime's room, then fetches its layout and the
// booked seats concurrently. The grid exists only if both succeed.
func (r *Reconciler) Load(ctx context.Context, showtimeID int64) (*SeatGrid, error) {
	gen := r.gen.Add(1)

	showtime, err := r.src.Showtime(ctx, showtimeID)
	if err != nil {
		return nil, r.fail(ctx, gen, fmt.Errorf("%w: showtime %d: %w", ErrSeatsUnavailable, showtimeID, err))
	}

	var (
		layout []response.SeatResponse
		booked *response.BookedSeatsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seats, err := r.src.RoomSeats(gctx, showtime.RoomID)
		if err != nil {
			return fmt.Errorf("room %d layout: %w", showtime.RoomID, err)
		}
		layout = seats
		return nil
	})
	g.Go(func() error {
		b, err := r.src.BookedSeats(gctx, showtimeID)
		if err != nil {
			return fmt.Errorf("booked seats of showtime %d: %w", showtimeID, err)
		}
		booked = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, r.fail(ctx, gen, fmt.Errorf("%w: %w", ErrSeatsUnavailable, err))
	}

	if r.stale(ctx, gen) {
		return nil, ErrStaleLoad
	}

	var bookedIDs []int64
	if booked != nil {
		bookedIDs = booked.SeatIDs
	}

	grid := NewSeatGrid(showtimeID, layout, bookedIDs)
	r.log.Debug("Seat grid loaded",
		zap.Int64("showtime_id", showtimeID),
		zap.Int("seats", grid.Len()),
		zap.Int("booked", len(bookedIDs)),
	)
	return grid, nil
}

func (r *Reconciler) stale(ctx context.Context, gen uint64) bool {
	return r.gen.Load() != gen || ctx.Err() != nil
}

// fail reports err unless the load was abandoned meanwhile.
func (r *Reconciler) fail(ctx context.Context, gen uint64, err error) error {
	if r.stale(ctx, gen) {
		return ErrStaleLoad
	}
	r.log.Warn("Seat grid unavailable", zap.Error(err))
	return err
}
