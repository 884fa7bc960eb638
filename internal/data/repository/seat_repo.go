package repository

import (
	"context"
	"fmt"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	FindByRoomID(ctx context.Context, roomID int64) ([]*entity.Seat, error)
	// FindByIDs returns the subset of ids that belong to the room
	FindByIDs(ctx context.Context, roomID int64, ids []int64) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindByRoomID(ctx context.Context, roomID int64) ([]*entity.Seat, error) {
	query := `
		SELECT id, room_id, seat_row, seat_col, seat_type, created_at
		FROM seats
		WHERE room_id = $1
		ORDER BY seat_row, seat_col
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find seats by room ID", zap.Error(err), zap.Int64("room_id", roomID))
		return nil, fmt.Errorf("find seats of room %d: %w", roomID, err)
	}

	return r.collect(rows)
}

func (r *seatRepository) FindByIDs(ctx context.Context, roomID int64, ids []int64) ([]*entity.Seat, error) {
	query := `
		SELECT id, room_id, seat_row, seat_col, seat_type, created_at
		FROM seats
		WHERE room_id = $1 AND id = ANY($2)
		ORDER BY seat_row, seat_col
	`

	rows, err := r.db.Query(ctx, query, roomID, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int64("room_id", roomID),
			zap.Int64s("seat_ids", ids),
		)
		return nil, fmt.Errorf("find seats %v of room %d: %w", ids, roomID, err)
	}

	return r.collect(rows)
}

func (r *seatRepository) collect(rows pgx.Rows) ([]*entity.Seat, error) {
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var s entity.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.Row, &s.Col, &s.Type, &s.CreatedAt); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &s)
	}

	return seats, rows.Err()
}
