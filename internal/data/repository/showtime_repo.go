package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Showtime, error)
	CountAll(ctx context.Context) (int64, error)
	FindByMovieID(ctx context.Context, movieID int64, from time.Time) ([]*entity.Showtime, error)
	// FindBetween returns showtimes starting in [from, to)
	FindBetween(ctx context.Context, from, to time.Time) ([]*entity.Showtime, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) error

	// HasOverlap reports whether the room is already used in [start, end).
	// excludeID skips the showtime being edited; pass 0 on create.
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, room_id, cinema_id, start_time, end_time, price, created_at, updated_at`

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var s entity.Showtime
	err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.RoomID,
		&s.CinemaID,
		&s.StartTime,
		&s.EndTime,
		&s.Price,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *showtimeRepository) collect(rows pgx.Rows) ([]*entity.Showtime, error) {
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		s, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, s)
	}

	return showtimes, rows.Err()
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, room_id, cinema_id, start_time, end_time, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.RoomID,
		showtime.CinemaID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	).Scan(&showtime.ID)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.Int64("room_id", showtime.RoomID),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1 AND deleted_at IS NULL`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID", zap.Error(err), zap.Int64("showtime_id", id))
		return nil, fmt.Errorf("find showtime %d: %w", id, err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE deleted_at IS NULL
		ORDER BY start_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	return r.collect(rows)
}

func (r *showtimeRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM showtimes WHERE deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count showtimes: %w", err)
	}
	return count, nil
}

func (r *showtimeRepository) FindByMovieID(ctx context.Context, movieID int64, from time.Time) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1 AND start_time >= $2 AND deleted_at IS NULL
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, movieID, from)
	if err != nil {
		r.log.Error("Failed to find showtimes by movie ID", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("find showtimes of movie %d: %w", movieID, err)
	}

	return r.collect(rows)
}

func (r *showtimeRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE start_time >= $1 AND start_time < $2 AND deleted_at IS NULL
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find showtimes by date",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find showtimes between %s and %s: %w", from, to, err)
	}

	return r.collect(rows)
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, room_id = $3, cinema_id = $4, start_time = $5, end_time = $6,
		    price = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.RoomID,
		showtime.CinemaID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update showtime", zap.Error(err), zap.Int64("showtime_id", showtime.ID))
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %d: %w", showtime.ID, ErrNotFound)
	}
	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE showtimes SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime", zap.Error(err), zap.Int64("showtime_id", id))
		return fmt.Errorf("delete showtime %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %d: %w", id, ErrNotFound)
	}

	r.log.Info("Showtime soft deleted", zap.Int64("showtime_id", id))
	return nil
}

func (r *showtimeRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM showtimes
			WHERE room_id = $1 AND id <> $4 AND deleted_at IS NULL
			  AND start_time < $3 AND end_time > $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID, start, end, excludeID).Scan(&exists); err != nil {
		r.log.Error("Failed to check showtime overlap", zap.Error(err), zap.Int64("room_id", roomID))
		return false, fmt.Errorf("check overlap in room %d: %w", roomID, err)
	}

	return exists, nil
}
