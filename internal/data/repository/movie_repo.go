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

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int, status *string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, status *string) (int64, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]*entity.Movie, error)
	CountSearch(ctx context.Context, keyword string) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error

	FindActors(ctx context.Context, movieID int64) ([]*entity.Actor, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, description, genre, poster_url, rating, release_date,
	duration_minutes, status, created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var m entity.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Genre,
		&m.PosterURL,
		&m.Rating,
		&m.ReleaseDate,
		&m.DurationMinutes,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) collect(rows pgx.Rows) ([]*entity.Movie, error) {
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, description, genre, poster_url, rating, release_date,
		                    duration_minutes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.PosterURL,
		movie.Rating,
		movie.ReleaseDate,
		movie.DurationMinutes,
		movie.Status,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID)
	if err != nil {
		r.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1 AND deleted_at IS NULL`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID", zap.Error(err), zap.Int64("movie_id", id))
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int, status *string) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE deleted_at IS NULL AND ($3::text IS NULL OR status = $3)
		ORDER BY release_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, status)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return r.collect(rows)
}

func (r *movieRepository) CountAll(ctx context.Context, status *string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE deleted_at IS NULL AND ($1::text IS NULL OR status = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}

func (r *movieRepository) Search(ctx context.Context, keyword string, limit, offset int) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE deleted_at IS NULL
		  AND (title ILIKE '%' || $1 || '%' OR genre ILIKE '%' || $1 || '%')
		ORDER BY release_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, keyword, limit, offset)
	if err != nil {
		r.log.Error("Failed to search movies", zap.Error(err), zap.String("keyword", keyword))
		return nil, fmt.Errorf("search movies %q: %w", keyword, err)
	}

	return r.collect(rows)
}

func (r *movieRepository) CountSearch(ctx context.Context, keyword string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM movies
		WHERE deleted_at IS NULL
		  AND (title ILIKE '%' || $1 || '%' OR genre ILIKE '%' || $1 || '%')
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, keyword).Scan(&count); err != nil {
		return 0, fmt.Errorf("count search movies %q: %w", keyword, err)
	}
	return count, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, genre = $4, poster_url = $5, rating = $6,
		    release_date = $7, duration_minutes = $8, status = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.PosterURL,
		movie.Rating,
		movie.ReleaseDate,
		movie.DurationMinutes,
		movie.Status,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie", zap.Error(err), zap.Int64("movie_id", movie.ID))
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, ErrNotFound)
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}

	r.log.Info("Movie soft deleted", zap.Int64("movie_id", id))
	return nil
}

// FindActors returns the cast of a movie in billing order
func (r *movieRepository) FindActors(ctx context.Context, movieID int64) ([]*entity.Actor, error) {
	query := `
		SELECT a.id, a.name, ma.character_name
		FROM actors a
		INNER JOIN movie_actors ma ON ma.actor_id = a.id
		WHERE ma.movie_id = $1
		ORDER BY ma.billing_order, a.name
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find actors by movie ID", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("find actors of movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var actors []*entity.Actor
	for rows.Next() {
		var a entity.Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Character); err != nil {
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		actors = append(actors, &a)
	}

	return actors, rows.Err()
}
