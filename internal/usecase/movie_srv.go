package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type MovieService interface {
	List(ctx context.Context, page *request.PaginatedRequest, status string) (*response.PaginatedResponse[response.MovieResponse], error)
	Search(ctx context.Context, keyword string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	Get(ctx context.Context, id int64) (*response.MovieResponse, error)
	Actors(ctx context.Context, movieID int64) ([]response.ActorResponse, error)
	Reviews(ctx context.Context, movieID int64, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// Admin
	Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	Update(ctx context.Context, id int64, req *request.MovieRequest) (*response.MovieResponse, error)
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) List(ctx context.Context, page *request.PaginatedRequest, status string) (*response.PaginatedResponse[response.MovieResponse], error) {
	var filter *string
	if status != "" {
		status = strings.ToUpper(status)
		filter = &status
	}

	movies, err := s.repo.Movie.FindAll(ctx, page.Limit(), page.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	return response.NewPaginatedResponse(moviesToResponse(movies), page.Page, page.Limit(), total), nil
}

func (s *movieService) Search(ctx context.Context, keyword string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, newError(ErrInvalidInput, "search keyword is required")
	}

	movies, err := s.repo.Movie.Search(ctx, keyword, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	total, err := s.repo.Movie.CountSearch(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("count search movies: %w", err)
	}

	s.log.Debug("Movie search",
		zap.String("keyword", keyword),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(moviesToResponse(movies), page.Page, page.Limit(), total), nil
}

func (s *movieService) Get(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) Actors(ctx context.Context, movieID int64) ([]response.ActorResponse, error) {
	if _, err := s.findMovie(ctx, movieID); err != nil {
		return nil, err
	}

	actors, err := s.repo.Movie.FindActors(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("movie actors: %w", err)
	}

	out := make([]response.ActorResponse, 0, len(actors))
	for _, a := range actors {
		out = append(out, response.ActorToResponse(a))
	}
	return out, nil
}

func (s *movieService) Reviews(ctx context.Context, movieID int64, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if _, err := s.findMovie(ctx, movieID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("movie reviews: %w", err)
	}

	total, err := s.repo.Review.CountByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("count movie reviews: %w", err)
	}

	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, response.ReviewToResponse(r))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *movieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{Base: entity.Base{CreatedAt: now}}
	if err := applyMovie(movie, req); err != nil {
		return nil, err
	}
	movie.UpdatedAt = now

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) Update(ctx context.Context, id int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyMovie(movie, req); err != nil {
		return nil, err
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "movie %d not found", id)
		}
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Movie.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "movie %d not found", id)
	}
	return err
}

func (s *movieService) findMovie(ctx context.Context, id int64) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "movie %d not found", id)
	}
	return movie, nil
}

func applyMovie(movie *entity.Movie, req *request.MovieRequest) error {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return newError(ErrInvalidInput, "invalid release date %q", req.ReleaseDate)
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Genre = req.Genre
	movie.PosterURL = req.PosterURL
	movie.Rating = req.Rating
	movie.ReleaseDate = releaseDate
	movie.DurationMinutes = req.DurationMinutes
	movie.Status = entity.MovieStatus(req.Status)
	return nil
}

func moviesToResponse(movies []*entity.Movie) []response.MovieResponse {
	out := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, response.MovieToResponse(m))
	}
	return out
}
