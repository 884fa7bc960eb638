// Package booking drives the client booking flow: a four step wizard over
// an in-memory draft, the seat grid reconciled from layout and booked
// seats, and the final submission.
package booking

import (
	"errors"

	"cinema-ticket/pkg/utils"
)

var (
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrNoSeatsSelected   = errors.New("please select at least one seat")
	// ErrSeatsUnavailable blocks seat selection when the grid could not be
	// built, so a failed fetch never looks like an empty room.
	ErrSeatsUnavailable = errors.New("seat availability could not be loaded")
	ErrUnknownSeat      = errors.New("seat does not belong to this showtime")
	ErrStaleLoad        = errors.New("seat load superseded")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
	ErrInvalidShowtime  = errors.New("showtime id must be positive")
)

// ValidationError lists submission fields rejected before any request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid booking: " + utils.FormatValidationErrors(e.Fields)
}

// SubmitError is a failed submission with the message to show the user.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }
