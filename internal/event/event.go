// Package event publishes booking lifecycle events to RabbitMQ so that
// downstream consumers (mailers, reporting) can react without sitting on
// the request path.
package event

import (
	"context"
	"time"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status"
)

type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   int64     `json:"bookingId"`
	BookingCode string    `json:"bookingCode"`
	UserID      int64     `json:"userId"`
	ShowtimeID  int64     `json:"showtimeId"`
	Status      string    `json:"status"`
	SeatIDs     []int64   `json:"seatIds,omitempty"`
	TotalPrice  float64   `json:"totalPrice"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Publisher delivers booking events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishBooking(ctx context.Context, evt BookingEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBooking(context.Context, BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
