package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cinema-ticket/internal/adaptor"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
		}
	}
	return nil
}

type fakeShowtimeService struct {
	usecase.ShowtimeService
	byMovie int
	get     int
}

func (f *fakeShowtimeService) ByMovie(context.Context, int64) ([]response.ShowtimeResponse, error) {
	f.byMovie++
	return []response.ShowtimeResponse{{ID: 7}}, nil
}

func (f *fakeShowtimeService) Get(_ context.Context, id int64) (*response.ShowtimeResponse, error) {
	f.get++
	return &response.ShowtimeResponse{ID: id}, nil
}

type fakeMovieService struct {
	usecase.MovieService
}

func (fakeMovieService) Delete(context.Context, int64) error { return nil }

func newCachedRouter(showtimes *fakeShowtimeService) *chi.Mux {
	pass := func(next http.Handler) http.Handler { return next }
	g := guards{
		auth:  pass,
		admin: pass,
		store: &memoryStore{data: map[string][]byte{}},
		cfg:   &utils.Config{Redis: utils.RedisConfig{CacheTTL: time.Minute}},
		log:   zap.NewNop(),
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		wireMovie(r, adaptor.NewMovieHandler(fakeMovieService{}, zap.NewNop()), g)
		wireShowtime(r, adaptor.NewShowtimeHandler(showtimes, zap.NewNop()), g)
	})
	return r
}

func serve(t *testing.T, r http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	if rec.Code >= 300 {
		t.Fatalf("%s %s = %d: %s", method, path, rec.Code, rec.Body.String())
	}
	return rec
}

func TestUpcomingShowtimesNeverCached(t *testing.T) {
	showtimes := &fakeShowtimeService{}
	r := newCachedRouter(showtimes)

	for range 3 {
		rec := serve(t, r, http.MethodGet, "/api/showtimes/movie/4")
		if got := rec.Header().Get("X-Cache"); got != "" {
			t.Errorf("X-Cache = %q, want none", got)
		}
	}
	if showtimes.byMovie != 3 {
		t.Errorf("ByMovie calls = %d, want 3", showtimes.byMovie)
	}
}

func TestMovieMutationDropsCachedShowtimes(t *testing.T) {
	showtimes := &fakeShowtimeService{}
	r := newCachedRouter(showtimes)

	serve(t, r, http.MethodGet, "/api/showtimes/7")
	if rec := serve(t, r, http.MethodGet, "/api/showtimes/7"); rec.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second GET X-Cache = %q, want HIT", rec.Header().Get("X-Cache"))
	}

	serve(t, r, http.MethodDelete, "/api/movies/4")

	if rec := serve(t, r, http.MethodGet, "/api/showtimes/7"); rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("GET after movie delete X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}
	if showtimes.get != 2 {
		t.Errorf("Get calls = %d, want 2", showtimes.get)
	}
}
