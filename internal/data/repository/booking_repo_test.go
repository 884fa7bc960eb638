package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"booking code taken", &pgconn.PgError{Code: "23505", ConstraintName: "bookings_booking_code_key"}, true},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "bookings_booking_code_key"}), true},
		{"other unique constraint", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, false},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "bookings_booking_code_key"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateCode(tt.err); got != tt.want {
				t.Errorf("isDuplicateCode() = %v, want %v", got, tt.want)
			}
		})
	}
}
