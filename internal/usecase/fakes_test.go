package usecase

import (
	"context"
	"sync"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/event"
)

// Fakes embed the repository interface so calls a test does not expect
// panic instead of silently passing.

type fakeShowtimes struct {
	repository.ShowtimeRepository
	byID    map[int64]*entity.Showtime
	overlap bool
	created []*entity.Showtime
}

func (f *fakeShowtimes) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	return f.byID[id], nil
}

func (f *fakeShowtimes) HasOverlap(context.Context, int64, time.Time, time.Time, int64) (bool, error) {
	return f.overlap, nil
}

func (f *fakeShowtimes) Create(_ context.Context, s *entity.Showtime) error {
	s.ID = int64(100 + len(f.created))
	f.created = append(f.created, s)
	return nil
}

type fakeSeats struct {
	repository.SeatRepository
	seats []*entity.Seat
}

func (f *fakeSeats) FindByIDs(_ context.Context, roomID int64, ids []int64) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, s := range f.seats {
		for _, id := range ids {
			if s.ID == id && s.RoomID == roomID {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakeRefreshments struct {
	repository.RefreshmentRepository
	items []*entity.Refreshment
}

func (f *fakeRefreshments) FindByIDs(_ context.Context, ids []int64) ([]*entity.Refreshment, error) {
	var out []*entity.Refreshment
	for _, r := range f.items {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

type fakeBookings struct {
	repository.BookingRepository
	byID       map[int64]*entity.Booking
	createErr  error
	// createErrs are returned by successive creates before createErr
	createErrs []error
	codes      []string
	statusErr  error
	created    *entity.Booking
	tickets    []*entity.Ticket
	items      []*entity.BookingRefreshment
}

func (f *fakeBookings) CreateWithItems(_ context.Context, b *entity.Booking, tickets []*entity.Ticket, items []*entity.BookingRefreshment) error {
	f.codes = append(f.codes, b.BookingCode)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = 1
	f.created, f.tickets, f.items = b, tickets, items
	return nil
}

func (f *fakeBookings) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	return f.byID[id], nil
}

func (f *fakeBookings) FindTickets(context.Context, int64) ([]*entity.Ticket, error) {
	return f.tickets, nil
}

func (f *fakeBookings) FindRefreshments(context.Context, int64) ([]*entity.BookingRefreshment, error) {
	return f.items, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, from, to entity.BookingStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	if b := f.byID[id]; b != nil && b.Status == from {
		b.Status = to
	}
	return nil
}

type fakeMovies struct {
	repository.MovieRepository
	byID map[int64]*entity.Movie
}

func (f *fakeMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	return f.byID[id], nil
}

type fakeRooms struct {
	repository.RoomRepository
	byID map[int64]*entity.Room
}

func (f *fakeRooms) FindByID(_ context.Context, id int64) (*entity.Room, error) {
	return f.byID[id], nil
}

type fakeCinemas struct {
	repository.CinemaRepository
}

func (f *fakeCinemas) FindByID(_ context.Context, id int64) (*entity.Cinema, error) {
	return &entity.Cinema{Base: entity.Base{ID: id}, Name: "Central"}, nil
}

type fakeUsers struct {
	repository.UserRepository
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return &entity.User{Base: entity.Base{ID: id}, Username: "alice", Email: "alice@example.com"}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.BookingEvent
}

func (p *recordingPublisher) PublishBooking(_ context.Context, evt event.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
