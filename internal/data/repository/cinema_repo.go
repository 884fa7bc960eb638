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

type CinemaRepository interface {
	Create(ctx context.Context, cinema *entity.Cinema) error
	FindByID(ctx context.Context, id int64) (*entity.Cinema, error)
	FindAll(ctx context.Context, limit, offset int, city *string) ([]*entity.Cinema, error)
	CountAll(ctx context.Context, city *string) (int64, error)
	Update(ctx context.Context, cinema *entity.Cinema) error
	Delete(ctx context.Context, id int64) error
}

type cinemaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCinemaRepository(db database.PgxIface, log *zap.Logger) CinemaRepository {
	return &cinemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema")),
	}
}

func (r *cinemaRepository) Create(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		INSERT INTO cinemas (name, address, city, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		cinema.Name,
		cinema.Address,
		cinema.City,
		cinema.Phone,
		cinema.CreatedAt,
		cinema.UpdatedAt,
	).Scan(&cinema.ID)
	if err != nil {
		r.log.Error("Failed to create cinema", zap.Error(err), zap.String("name", cinema.Name))
		return fmt.Errorf("create cinema %q: %w", cinema.Name, err)
	}

	return nil
}

func (r *cinemaRepository) FindByID(ctx context.Context, id int64) (*entity.Cinema, error) {
	query := `
		SELECT id, name, address, city, phone, created_at, updated_at
		FROM cinemas
		WHERE id = $1 AND deleted_at IS NULL
	`

	var c entity.Cinema
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.City,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by ID", zap.Error(err), zap.Int64("cinema_id", id))
		return nil, fmt.Errorf("find cinema %d: %w", id, err)
	}

	return &c, nil
}

func (r *cinemaRepository) FindAll(ctx context.Context, limit, offset int, city *string) ([]*entity.Cinema, error) {
	query := `
		SELECT id, name, address, city, phone, created_at, updated_at
		FROM cinemas
		WHERE deleted_at IS NULL AND ($3::text IS NULL OR city ILIKE $3)
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, city)
	if err != nil {
		r.log.Error("Failed to list cinemas", zap.Error(err))
		return nil, fmt.Errorf("list cinemas: %w", err)
	}
	defer rows.Close()

	var cinemas []*entity.Cinema
	for rows.Next() {
		var c entity.Cinema
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Address,
			&c.City,
			&c.Phone,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cinema row", zap.Error(err))
			return nil, fmt.Errorf("scan cinema row: %w", err)
		}
		cinemas = append(cinemas, &c)
	}

	return cinemas, rows.Err()
}

func (r *cinemaRepository) CountAll(ctx context.Context, city *string) (int64, error) {
	query := `SELECT COUNT(*) FROM cinemas WHERE deleted_at IS NULL AND ($1::text IS NULL OR city ILIKE $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, city).Scan(&count); err != nil {
		r.log.Error("Failed to count cinemas", zap.Error(err))
		return 0, fmt.Errorf("count cinemas: %w", err)
	}

	return count, nil
}

func (r *cinemaRepository) Update(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		UPDATE cinemas
		SET name = $2, address = $3, city = $4, phone = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.Name,
		cinema.Address,
		cinema.City,
		cinema.Phone,
		cinema.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update cinema", zap.Error(err), zap.Int64("cinema_id", cinema.ID))
		return fmt.Errorf("update cinema %d: %w", cinema.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %d: %w", cinema.ID, ErrNotFound)
	}

	return nil
}

func (r *cinemaRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE cinemas SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete cinema", zap.Error(err), zap.Int64("cinema_id", id))
		return fmt.Errorf("delete cinema %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %d: %w", id, ErrNotFound)
	}

	r.log.Info("Cinema soft deleted", zap.Int64("cinema_id", id))
	return nil
}
