package repository

import (
	"context"
	"fmt"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RefreshmentRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.Refreshment, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Refreshment, error)
}

type refreshmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRefreshmentRepository(db database.PgxIface, log *zap.Logger) RefreshmentRepository {
	return &refreshmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "refreshment")),
	}
}

func (r *refreshmentRepository) FindAllActive(ctx context.Context) ([]*entity.Refreshment, error) {
	query := `
		SELECT id, name, price, is_active, created_at, updated_at
		FROM refreshments
		WHERE is_active AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list refreshments", zap.Error(err))
		return nil, fmt.Errorf("list refreshments: %w", err)
	}

	return r.collect(rows)
}

// FindByIDs returns the active refreshments among ids
func (r *refreshmentRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Refreshment, error) {
	query := `
		SELECT id, name, price, is_active, created_at, updated_at
		FROM refreshments
		WHERE id = ANY($1) AND is_active AND deleted_at IS NULL
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find refreshments by IDs", zap.Error(err), zap.Int64s("ids", ids))
		return nil, fmt.Errorf("find refreshments %v: %w", ids, err)
	}

	return r.collect(rows)
}

func (r *refreshmentRepository) collect(rows pgx.Rows) ([]*entity.Refreshment, error) {
	defer rows.Close()

	var items []*entity.Refreshment
	for rows.Next() {
		var item entity.Refreshment
		err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan refreshment row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
