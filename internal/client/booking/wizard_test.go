package booking

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"cinema-ticket/internal/client/api"
	"cinema-ticket/internal/client/ui"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

// readyWizard is a deep-linked wizard with the 2x2 grid loaded and seat 2
// booked.
func readyWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard(7)
	w.SetSeatGrid(NewSeatGrid(7, twoByTwo(), []int64{2}), nil)
	return w
}

func mustStep(t *testing.T, w *Wizard, want Step) {
	t.Helper()
	if w.Step() != want {
		t.Fatalf("Step() = %s, want %s", w.Step(), want)
	}
}

func TestWizardStart(t *testing.T) {
	if got := NewWizard(0).Step(); got != StepChooseShowtime {
		t.Errorf("NewWizard(0) step = %s", got)
	}
	if got := NewWizard(7).Step(); got != StepChooseSeats {
		t.Errorf("NewWizard(7) step = %s", got)
	}

	w := NewWizard(0)
	if err := w.SelectShowtime(0); !errors.Is(err, ErrInvalidShowtime) {
		t.Errorf("SelectShowtime(0) error = %v", err)
	}
	if err := w.SelectShowtime(7); err != nil {
		t.Fatalf("SelectShowtime(7) error = %v", err)
	}
	mustStep(t, w, StepChooseSeats)
	if w.Draft().ShowtimeID != 7 {
		t.Errorf("draft showtime = %d", w.Draft().ShowtimeID)
	}
}

func TestWizardHappyPath(t *testing.T) {
	w := readyWizard(t)

	if ok, err := w.ToggleSeat(1); err != nil || !ok {
		t.Fatalf("ToggleSeat(1) = %v, %v", ok, err)
	}
	if err := w.ContinueFromSeats(); err != nil {
		t.Fatalf("ContinueFromSeats() error = %v", err)
	}
	mustStep(t, w, StepChooseRefreshments)

	if err := w.SetRefreshment(5, 2); err != nil {
		t.Fatalf("SetRefreshment() error = %v", err)
	}
	if err := w.ContinueFromRefreshments(); err != nil {
		t.Fatalf("ContinueFromRefreshments() error = %v", err)
	}
	mustStep(t, w, StepConfirm)
}

func TestWizardRequiresSeats(t *testing.T) {
	w := readyWizard(t)

	if err := w.ContinueFromSeats(); !errors.Is(err, ErrNoSeatsSelected) {
		t.Fatalf("ContinueFromSeats() error = %v, want ErrNoSeatsSelected", err)
	}
	mustStep(t, w, StepChooseSeats)
}

func TestWizardRejectsUnlistedTransitions(t *testing.T) {
	w := readyWizard(t)

	// no way back to showtime selection
	if err := w.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Back() on seats error = %v", err)
	}
	if err := w.SelectShowtime(8); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SelectShowtime() on seats error = %v", err)
	}
	if err := w.SkipRefreshments(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SkipRefreshments() on seats error = %v", err)
	}
	if err := w.SetRefreshment(5, 1); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SetRefreshment() on seats error = %v", err)
	}
	if _, err := w.Submit(context.Background(), nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit() on seats error = %v", err)
	}
	mustStep(t, w, StepChooseSeats)
}

func TestWizardBackKeepsSelections(t *testing.T) {
	w := readyWizard(t)
	w.ToggleSeat(1)
	w.ToggleSeat(3)
	_ = w.ContinueFromSeats()
	_ = w.SetRefreshment(5, 2)
	_ = w.ContinueFromRefreshments()

	if err := w.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	mustStep(t, w, StepChooseRefreshments)

	if got := w.Draft().SeatIDs(); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("seats = %v", got)
	}
	if got := w.Draft().Refreshments(); len(got) != 1 || got[0].Quantity != 2 {
		t.Errorf("refreshments = %v", got)
	}

	// seats are fixed once past the seat step
	if _, err := w.ToggleSeat(4); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ToggleSeat() on refreshments error = %v", err)
	}
}

func TestWizardToggleSeat(t *testing.T) {
	w := readyWizard(t)

	if ok, err := w.ToggleSeat(2); err != nil || ok {
		t.Errorf("ToggleSeat(booked) = %v, %v; want no-op", ok, err)
	}
	if w.Draft().IsSelected(2) {
		t.Error("booked seat selected")
	}
	if _, err := w.ToggleSeat(99); !errors.Is(err, ErrUnknownSeat) {
		t.Errorf("ToggleSeat(99) error = %v", err)
	}

	w.ToggleSeat(1)
	if ok, _ := w.ToggleSeat(1); ok || w.Draft().SeatCount() != 0 {
		t.Error("second toggle did not deselect")
	}
}

func TestWizardGridFailureBlocksSelection(t *testing.T) {
	w := NewWizard(7)

	if _, err := w.ToggleSeat(1); !errors.Is(err, ErrSeatsUnavailable) {
		t.Errorf("ToggleSeat() before load error = %v", err)
	}

	loadErr := errors.Join(ErrSeatsUnavailable, errors.New("booked seats: 500"))
	w.SetSeatGrid(nil, loadErr)

	if _, err := w.ToggleSeat(1); !errors.Is(err, ErrSeatsUnavailable) {
		t.Errorf("ToggleSeat() after failed load error = %v", err)
	}
	if w.Grid() != nil {
		t.Error("grid set after failed load")
	}
}

func TestWizardSetSeatGrid(t *testing.T) {
	w := NewWizard(7)
	w.SetSeatGrid(NewSeatGrid(7, twoByTwo(), nil), nil)
	w.ToggleSeat(1)
	w.ToggleSeat(2)

	// a reload finds seat 2 taken by someone else
	dropped := w.SetSeatGrid(NewSeatGrid(7, twoByTwo(), []int64{2}), nil)
	if !slices.Equal(dropped, []int64{2}) {
		t.Errorf("dropped = %v, want [2]", dropped)
	}
	if got := w.Draft().SeatIDs(); !slices.Equal(got, []int64{1}) {
		t.Errorf("seats = %v, want [1]", got)
	}

	current := w.Grid()
	w.SetSeatGrid(nil, ErrStaleLoad)
	w.SetSeatGrid(NewSeatGrid(8, twoByTwo(), nil), nil)
	if w.Grid() != current {
		t.Error("stale or foreign grid replaced the current one")
	}
}

type fakeCreator struct {
	err     error
	calls   int
	invalid []string
}

func (f *fakeCreator) CreateBooking(_ context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &response.BookingResponse{ID: 9, BookingCode: "BOOK-9", TotalPrice: 50000 * float64(len(req.SeatIDs))}, nil
}

func (f *fakeCreator) InvalidateQueries(prefix string) {
	f.invalid = append(f.invalid, prefix)
}

func confirmWizard(t *testing.T) *Wizard {
	t.Helper()
	w := readyWizard(t)
	w.ToggleSeat(1)
	_ = w.ContinueFromSeats()
	_ = w.SkipRefreshments()
	mustStep(t, w, StepConfirm)
	return w
}

func TestWizardSubmit(t *testing.T) {
	w := confirmWizard(t)
	rec := &ui.Recorder{}
	creator := &fakeCreator{}

	booking, err := w.Submit(context.Background(), NewSubmitter(creator, rec, rec, zap.NewNop()))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	mustStep(t, w, StepDone)
	if w.Booking() != booking || booking.BookingCode != "BOOK-9" {
		t.Errorf("Booking() = %+v", w.Booking())
	}

	if err := w.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Back() after done error = %v", err)
	}
}

func TestWizardSubmitFailureStaysOnConfirm(t *testing.T) {
	w := confirmWizard(t)
	rec := &ui.Recorder{}
	creator := &fakeCreator{err: &api.APIError{Status: http.StatusConflict, Message: "Seat A1 already booked"}}

	if _, err := w.Submit(context.Background(), NewSubmitter(creator, rec, rec, zap.NewNop())); err == nil {
		t.Fatal("Submit() succeeded")
	}
	mustStep(t, w, StepConfirm)

	var subErr *SubmitError
	if !errors.As(w.Err(), &subErr) || subErr.Message != "Seat A1 already booked" {
		t.Errorf("Err() = %v", w.Err())
	}
	if w.Draft().SeatCount() != 1 {
		t.Error("failed submit cleared the draft")
	}
}
