package repository

import (
	"context"
	"fmt"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/pkg/database"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	FindByMovieID(ctx context.Context, movieID int64, limit, offset int) ([]*entity.Review, error)
	CountByMovieID(ctx context.Context, movieID int64) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT r.id, r.user_id, u.username, r.movie_id, r.rating, r.comment, r.created_at
		FROM reviews r
		INNER JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, movieID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews of movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var rv entity.Review
		err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.Username,
			&rv.MovieID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &rv)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByMovieID(ctx context.Context, movieID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err), zap.Int64("movie_id", movieID))
		return 0, fmt.Errorf("count reviews of movie %d: %w", movieID, err)
	}

	return count, nil
}
