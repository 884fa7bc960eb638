package booking

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticket/internal/dto/response"
)

type Step int

const (
	StepChooseShowtime Step = iota + 1
	StepChooseSeats
	StepChooseRefreshments
	StepConfirm
	// StepDone marks a submitted booking; the wizard accepts no more events.
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepChooseShowtime:
		return "choose_showtime"
	case StepChooseSeats:
		return "choose_seats"
	case StepChooseRefreshments:
		return "choose_refreshments"
	case StepConfirm:
		return "confirm"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

type Event int

const (
	EventSelectShowtime Event = iota + 1
	EventContinueSeats
	EventSkipRefreshments
	EventContinueRefreshments
	EventBack
	EventSubmitted
)

func (e Event) String() string {
	switch e {
	case EventSelectShowtime:
		return "select_showtime"
	case EventContinueSeats:
		return "continue_seats"
	case EventSkipRefreshments:
		return "skip_refreshments"
	case EventContinueRefreshments:
		return "continue_refreshments"
	case EventBack:
		return "back"
	case EventSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

type transition struct {
	From  Step
	Event Event
	To    Step
	Guard func(w *Wizard) error
}

// transitions is the complete wizard graph. Anything not listed is
// rejected, including every way back to showtime selection.
var transitions = []transition{
	{From: StepChooseShowtime, Event: EventSelectShowtime, To: StepChooseSeats},
	{From: StepChooseSeats, Event: EventContinueSeats, To: StepChooseRefreshments, Guard: hasSeats},
	{From: StepChooseRefreshments, Event: EventSkipRefreshments, To: StepConfirm},
	{From: StepChooseRefreshments, Event: EventContinueRefreshments, To: StepConfirm},
	{From: StepConfirm, Event: EventBack, To: StepChooseRefreshments},
	{From: StepConfirm, Event: EventSubmitted, To: StepDone},
}

func hasSeats(w *Wizard) error {
	if w.draft.SeatCount() == 0 {
		return ErrNoSeatsSelected
	}
	return nil
}

// Wizard walks one booking from showtime choice to confirmation.
type Wizard struct {
	step    Step
	draft   *Draft
	grid    *SeatGrid
	gridErr error
	lastErr error
	booking *response.BookingResponse
}

// NewWizard starts on seat selection when showtimeID is known, e.g. from
// a movie page deep link, and on showtime selection otherwise.
func NewWizard(showtimeID int64) *Wizard {
	w := &Wizard{step: StepChooseShowtime, draft: NewDraft(0)}
	if showtimeID > 0 {
		w.step = StepChooseSeats
		w.draft.ShowtimeID = showtimeID
	}
	return w
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Draft() *Draft { return w.draft }

func (w *Wizard) Grid() *SeatGrid { return w.grid }

// Err is the last submission failure, cleared on the next attempt.
func (w *Wizard) Err() error { return w.lastErr }

// Booking is the created booking once the wizard is done.
func (w *Wizard) Booking() *response.BookingResponse { return w.booking }

func (w *Wizard) fire(ev Event) error {
	for _, t := range transitions {
		if t.From != w.step || t.Event != ev {
			continue
		}
		if t.Guard != nil {
			if err := t.Guard(w); err != nil {
				return err
			}
		}
		w.step = t.To
		return nil
	}
	return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev, w.step)
}

func (w *Wizard) SelectShowtime(id int64) error {
	if id <= 0 {
		return ErrInvalidShowtime
	}
	if err := w.fire(EventSelectShowtime); err != nil {
		return err
	}
	w.draft.ShowtimeID = id
	return nil
}

func (w *Wizard) ContinueFromSeats() error { return w.fire(EventContinueSeats) }

func (w *Wizard) SkipRefreshments() error { return w.fire(EventSkipRefreshments) }

func (w *Wizard) ContinueFromRefreshments() error { return w.fire(EventContinueRefreshments) }

// Back returns from Confirm to refreshments, keeping every selection.
func (w *Wizard) Back() error { return w.fire(EventBack) }

// SetSeatGrid records a reconciler result for the current showtime.
// Selected seats that turn out booked are dropped and returned. A stale
// result is ignored.
func (w *Wizard) SetSeatGrid(grid *SeatGrid, err error) []int64 {
	if errors.Is(err, ErrStaleLoad) {
		return nil
	}
	if err != nil {
		w.grid, w.gridErr = nil, err
		return nil
	}
	if grid == nil || grid.ShowtimeID != w.draft.ShowtimeID {
		return nil
	}

	w.grid, w.gridErr = grid, nil

	var dropped []int64
	for _, id := range w.draft.SeatIDs() {
		if grid.IsBooked(id) || !grid.Has(id) {
			w.draft.dropSeat(id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// ToggleSeat flips a seat on the seat step and reports whether it is now
// selected. Booked seats are a no-op. Without a loaded grid nothing can
// be selected.
func (w *Wizard) ToggleSeat(id int64) (bool, error) {
	if w.step != StepChooseSeats {
		return false, fmt.Errorf("%w: seats are chosen on %s, not %s", ErrInvalidTransition, StepChooseSeats, w.step)
	}
	if w.grid == nil {
		if w.gridErr != nil {
			return false, w.gridErr
		}
		return false, ErrSeatsUnavailable
	}
	if !w.grid.Has(id) {
		return false, ErrUnknownSeat
	}
	if w.grid.IsBooked(id) {
		return false, nil
	}
	return w.draft.toggleSeat(id), nil
}

// SetRefreshment sets a quantity on the refreshment step.
func (w *Wizard) SetRefreshment(id int64, qty int) error {
	if w.step != StepChooseRefreshments {
		return fmt.Errorf("%w: refreshments are chosen on %s, not %s", ErrInvalidTransition, StepChooseRefreshments, w.step)
	}
	return w.draft.SetRefreshment(id, qty)
}

// Submit sends the draft from the Confirm step. On failure the wizard
// stays on Confirm and Err reports why.
func (w *Wizard) Submit(ctx context.Context, s *Submitter) (*response.BookingResponse, error) {
	if w.step != StepConfirm {
		return nil, fmt.Errorf("%w: submit on %s", ErrInvalidTransition, w.step)
	}

	w.lastErr = nil
	booking, err := s.Submit(ctx, w.draft.ShowtimeID, w.draft.SeatIDs(), w.draft.Refreshments())
	if err != nil {
		w.lastErr = err
		return nil, err
	}

	w.booking = booking
	if err := w.fire(EventSubmitted); err != nil {
		return nil, err
	}
	return booking, nil
}
