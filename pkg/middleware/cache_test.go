package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
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

func TestResponseCache(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	status := http.StatusOK

	h := ResponseCache(store, "movies", time.Minute, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":true}`))
	}))

	get := func() *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies?page=1", nil))
		return rec
	}

	if rec := get(); rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first GET X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}
	rec := get()
	if rec.Header().Get("X-Cache") != "HIT" || rec.Body.String() != `{"status":true}` {
		t.Fatalf("second GET X-Cache = %q body = %q", rec.Header().Get("X-Cache"), rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}

	// failed mutations keep the cache
	status = http.StatusBadRequest
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/movies", nil))
	if _, ok, _ := store.Get(context.Background(), "movies:/api/movies?page=1"); !ok {
		t.Fatal("failed POST dropped the cache")
	}

	status = http.StatusCreated
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/movies", nil))
	if _, ok, _ := store.Get(context.Background(), "movies:/api/movies?page=1"); ok {
		t.Fatal("successful POST kept the cache")
	}

	status = http.StatusOK
	if rec := get(); rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("GET after mutation X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}
}

func TestResponseCacheNilStore(t *testing.T) {
	calls := 0
	h := ResponseCache(nil, "movies", time.Minute, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies", nil))
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestResponseCacheDropsDependents(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	for _, key := range []string{"rooms:/api/rooms/1", "showtimes:/api/showtimes/7", "movies:/api/movies"} {
		_ = store.Set(ctx, key, []byte(`{}`), time.Minute)
	}

	h := ResponseCache(store, "rooms", time.Minute, zap.NewNop(), "showtimes")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/rooms/1", nil))

	tests := []struct {
		key  string
		kept bool
	}{
		{"rooms:/api/rooms/1", false},
		{"showtimes:/api/showtimes/7", false},
		{"movies:/api/movies", true},
	}
	for _, tt := range tests {
		if _, ok, _ := store.Get(ctx, tt.key); ok != tt.kept {
			t.Errorf("%s kept = %v, want %v", tt.key, ok, tt.kept)
		}
	}
}
