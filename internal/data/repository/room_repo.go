package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	// Create stores the room and its seat grid atomically
	Create(ctx context.Context, room *entity.Room, seats []*entity.Seat) error
	FindByID(ctx context.Context, id int64) (*entity.Room, error)
	FindAll(ctx context.Context, limit, offset int, cinemaID *int64) ([]*entity.Room, error)
	CountAll(ctx context.Context, cinemaID *int64) (int64, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id int64) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, cinema_id, name, total_rows, seats_per_row, created_at, updated_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.CinemaID,
		&room.Name,
		&room.Rows,
		&room.SeatsPerRow,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room, seats []*entity.Seat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin room transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO rooms (cinema_id, name, total_rows, seats_per_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		room.CinemaID,
		room.Name,
		room.Rows,
		room.SeatsPerRow,
		room.CreatedAt,
		room.UpdatedAt,
	).Scan(&room.ID)
	if err != nil {
		r.log.Error("Failed to create room", zap.Error(err), zap.Int64("cinema_id", room.CinemaID))
		return fmt.Errorf("create room %q: %w", room.Name, err)
	}

	rows := make([][]any, 0, len(seats))
	for _, s := range seats {
		s.RoomID = room.ID
		rows = append(rows, []any{s.RoomID, s.Row, s.Col, s.Type, room.CreatedAt})
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"seats"},
		[]string{"room_id", "seat_row", "seat_col", "seat_type", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		r.log.Error("Failed to generate seats", zap.Error(err), zap.Int64("room_id", room.ID))
		return fmt.Errorf("generate seats for room %d: %w", room.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit room %d: %w", room.ID, err)
	}

	r.log.Info("Room created",
		zap.Int64("room_id", room.ID),
		zap.Int64("seats", copied),
	)
	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 AND deleted_at IS NULL`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID", zap.Error(err), zap.Int64("room_id", id))
		return nil, fmt.Errorf("find room %d: %w", id, err)
	}

	return room, nil
}

func (r *roomRepository) FindAll(ctx context.Context, limit, offset int, cinemaID *int64) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE deleted_at IS NULL AND ($3::bigint IS NULL OR cinema_id = $3)
		ORDER BY cinema_id, name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, cinemaID)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) CountAll(ctx context.Context, cinemaID *int64) (int64, error) {
	query := `SELECT COUNT(*) FROM rooms WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR cinema_id = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, cinemaID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

// Update renames a room. The seat grid is fixed once generated.
func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `UPDATE rooms SET name = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, room.ID, room.Name, room.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update room", zap.Error(err), zap.Int64("room_id", room.ID))
		return fmt.Errorf("update room %d: %w", room.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %d: %w", room.ID, ErrNotFound)
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE rooms SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete room", zap.Error(err), zap.Int64("room_id", id))
		return fmt.Errorf("delete room %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %d: %w", id, ErrNotFound)
	}

	r.log.Info("Room soft deleted", zap.Int64("room_id", id))
	return nil
}
