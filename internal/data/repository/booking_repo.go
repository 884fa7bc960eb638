package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateWithItems stores a booking with its tickets and refreshment lines
	// in one transaction. It returns ErrConflict if any seat was taken by a
	// PENDING or PAID booking of the same showtime in the meantime, and
	// ErrDuplicateCode if the booking code is already in use.
	CreateWithItems(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket, items []*entity.BookingRefreshment) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	// FindAll lists bookings newest first. A nil userID lists everyone's.
	FindAll(ctx context.Context, limit, offset int, userID *int64) ([]*entity.Booking, error)
	CountAll(ctx context.Context, userID *int64) (int64, error)
	FindTickets(ctx context.Context, bookingID int64) ([]*entity.Ticket, error)
	FindRefreshments(ctx context.Context, bookingID int64) ([]*entity.BookingRefreshment, error)

	// UpdateStatus moves a booking from one status to another. ErrConflict
	// means the booking exists but is no longer in status from.
	UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus) error
	FindBookedSeatIDs(ctx context.Context, showtimeID int64) ([]int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_code, user_id, showtime_id, total_price, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.UserID,
		&b.ShowtimeID,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

const bookingCodeConstraint = "bookings_booking_code_key"

func isDuplicateCode(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == bookingCodeConstraint
}

const bookedSeatsQuery = `
	SELECT t.seat_id
	FROM tickets t
	INNER JOIN bookings b ON b.id = t.booking_id
	WHERE b.showtime_id = $1 AND b.status IN ('PENDING', 'PAID') AND b.deleted_at IS NULL
`

func (r *bookingRepository) CreateWithItems(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket, items []*entity.BookingRefreshment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialise bookings per showtime so the seat check below stays valid
	// until commit.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, booking.ShowtimeID); err != nil {
		return fmt.Errorf("lock showtime %d: %w", booking.ShowtimeID, err)
	}

	seatIDs := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		seatIDs = append(seatIDs, t.SeatID)
	}

	var taken int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM (`+bookedSeatsQuery+`) booked WHERE booked.seat_id = ANY($2)`,
		booking.ShowtimeID, seatIDs,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check booked seats for showtime %d: %w", booking.ShowtimeID, err)
	}
	if taken > 0 {
		return fmt.Errorf("%d of %d seats already booked: %w", taken, len(seatIDs), ErrConflict)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (booking_code, user_id, showtime_id, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		booking.BookingCode,
		booking.UserID,
		booking.ShowtimeID,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)
	if isDuplicateCode(err) {
		r.log.Warn("Booking code already in use", zap.String("booking_code", booking.BookingCode))
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, ErrDuplicateCode)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.Int64("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	for _, t := range tickets {
		t.BookingID = booking.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO tickets (booking_id, seat_id, seat_label, price, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, t.BookingID, t.SeatID, t.SeatLabel, t.Price, booking.CreatedAt).Scan(&t.ID)
		if err != nil {
			return fmt.Errorf("create ticket for seat %d: %w", t.SeatID, err)
		}
		t.CreatedAt = booking.CreatedAt
	}

	for _, item := range items {
		item.BookingID = booking.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_refreshments (booking_id, refreshment_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, item.BookingID, item.RefreshmentID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("add refreshment %d: %w", item.RefreshmentID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", booking.BookingCode, err)
	}

	r.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("booking_code", booking.BookingCode),
		zap.Int("seats", len(tickets)),
	)
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int, userID *int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE deleted_at IS NULL AND ($3::bigint IS NULL OR user_id = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, userID)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountAll(ctx context.Context, userID *int64) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR user_id = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindTickets(ctx context.Context, bookingID int64) ([]*entity.Ticket, error) {
	query := `
		SELECT id, booking_id, seat_id, seat_label, price, created_at
		FROM tickets
		WHERE booking_id = $1
		ORDER BY seat_label
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find tickets of booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.SeatID, &t.SeatLabel, &t.Price, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &t)
	}

	return tickets, rows.Err()
}

func (r *bookingRepository) FindRefreshments(ctx context.Context, bookingID int64) ([]*entity.BookingRefreshment, error) {
	query := `
		SELECT booking_id, refreshment_id, name, quantity, unit_price
		FROM booking_refreshments
		WHERE booking_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find refreshments of booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var items []*entity.BookingRefreshment
	for rows.Next() {
		var item entity.BookingRefreshment
		if err := rows.Scan(&item.BookingID, &item.RefreshmentID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan booking refreshment row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update booking %d status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d is not %s: %w", id, from, ErrConflict)
	}

	r.log.Info("Booking status updated",
		zap.Int64("booking_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return nil
}

func (r *bookingRepository) FindBookedSeatIDs(ctx context.Context, showtimeID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, bookedSeatsQuery+` ORDER BY t.seat_id`, showtimeID)
	if err != nil {
		r.log.Error("Failed to find booked seats", zap.Error(err), zap.Int64("showtime_id", showtimeID))
		return nil, fmt.Errorf("find booked seats of showtime %d: %w", showtimeID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seat id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
