package admin

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"testing"

	"cinema-ticket/internal/client/api"
	"cinema-ticket/internal/client/ui"
	"cinema-ticket/internal/dto/response"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

// fakeTransport records calls and answers every request with reply.
type fakeTransport struct {
	calls       []call
	reply       any
	err         error
	invalidated []string
}

func (f *fakeTransport) answer(method, path string, query url.Values, body, out any) error {
	f.calls = append(f.calls, call{method, path, query, body})
	if f.err != nil {
		return f.err
	}
	if out == nil || f.reply == nil {
		return nil
	}
	b, err := json.Marshal(f.reply)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values, out any) error {
	return f.answer(http.MethodGet, path, query, nil, out)
}

func (f *fakeTransport) Post(_ context.Context, path string, body, out any) error {
	return f.answer(http.MethodPost, path, nil, body, out)
}

func (f *fakeTransport) Put(_ context.Context, path string, body, out any) error {
	return f.answer(http.MethodPut, path, nil, body, out)
}

func (f *fakeTransport) Delete(_ context.Context, path string, out any) error {
	return f.answer(http.MethodDelete, path, nil, nil, out)
}

func (f *fakeTransport) InvalidateQueries(prefix string) {
	f.invalidated = append(f.invalidated, prefix)
}

func TestResourceList(t *testing.T) {
	tr := &fakeTransport{reply: response.NewPaginatedResponse([]response.MovieResponse{{ID: 1, Title: "Dune"}}, 2, 5, 6)}
	r := NewResource[response.MovieResponse](tr, Movies, &ui.Recorder{}, zap.NewNop())

	page, err := r.List(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Dune" || page.Pagination.TotalPages != 2 {
		t.Errorf("page = %+v", page)
	}

	c := tr.calls[0]
	if c.path != "/api/movies" || c.query.Get("page") != "2" || c.query.Get("per_page") != "5" {
		t.Errorf("call = %+v", c)
	}
}

func TestResourceCreateValidates(t *testing.T) {
	tr := &fakeTransport{}
	rec := &ui.Recorder{}
	r := NewResource[response.MovieResponse](tr, Movies, rec, zap.NewNop())

	_, err := r.Create(context.Background(), map[string]any{"title": "  ", "durationMinutes": 120})

	var ferr *FieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("Create() error = %v, want FieldError", err)
	}
	if !slices.Equal(ferr.Missing, []string{"title", "releaseDate", "status"}) {
		t.Errorf("Missing = %v", ferr.Missing)
	}
	if len(tr.calls) != 0 {
		t.Errorf("invalid form sent %d requests", len(tr.calls))
	}
}

func TestResourceUpdateSkipsCreateOnlyFields(t *testing.T) {
	tr := &fakeTransport{reply: response.UserResponse{ID: 3, Username: "bob"}}
	rec := &ui.Recorder{}
	r := NewResource[response.UserResponse](tr, Users, rec, zap.NewNop())

	if err := r.Validate(map[string]any{}, true); err == nil {
		t.Fatal("create without username passed validation")
	}

	user, err := r.Update(context.Background(), 3, map[string]any{"fullName": "Bob", "status": "ACTIVE"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if user.Username != "bob" {
		t.Errorf("user = %+v", user)
	}
	if c := tr.calls[0]; c.method != http.MethodPut || c.path != "/api/users/3" {
		t.Errorf("call = %+v", c)
	}
	if toasts := rec.Toasts(); len(toasts) != 1 || toasts[0].Message != "User updated" {
		t.Errorf("toasts = %v", toasts)
	}
}

func TestResourceMutationFailureToasts(t *testing.T) {
	tr := &fakeTransport{err: &api.APIError{Status: http.StatusConflict, Message: "Cinema has rooms"}}
	rec := &ui.Recorder{}
	r := NewResource[response.CinemaResponse](tr, Cinemas, rec, zap.NewNop())

	if err := r.Delete(context.Background(), 4); err == nil {
		t.Fatal("Delete() succeeded")
	}
	toasts := rec.Toasts()
	if len(toasts) != 1 || toasts[0].Level != "error" || toasts[0].Message != "Cinema has rooms" {
		t.Errorf("toasts = %v", toasts)
	}
	if c := tr.calls[0]; c.method != http.MethodDelete || c.path != "/api/cinemas/4" {
		t.Errorf("call = %+v", c)
	}
}

func TestReadOnlyResourceActions(t *testing.T) {
	tr := &fakeTransport{reply: response.BookingResponse{ID: 8, Status: "PAID"}}
	rec := &ui.Recorder{}
	r := NewResource[response.BookingResponse](tr, Bookings, rec, zap.NewNop())

	if _, err := r.Create(context.Background(), map[string]any{}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Create() error = %v", err)
	}
	if err := r.Delete(context.Background(), 8); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := r.Action(context.Background(), 8, "refund"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Action(refund) error = %v", err)
	}
	if len(tr.calls) != 0 {
		t.Fatalf("rejected operations sent %d requests", len(tr.calls))
	}

	b, err := r.Action(context.Background(), 8, "confirm")
	if err != nil {
		t.Fatalf("Action(confirm) error = %v", err)
	}
	if b.Status != "PAID" {
		t.Errorf("status = %s", b.Status)
	}
	if c := tr.calls[0]; c.method != http.MethodPut || c.path != "/api/bookings/8/confirm" {
		t.Errorf("call = %+v", c)
	}
	if !slices.Equal(tr.invalidated, []string{api.QueryMyBookings}) {
		t.Errorf("invalidated = %v, want [%s]", tr.invalidated, api.QueryMyBookings)
	}
}

func TestActionInvalidatesOnlyOnSuccess(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		err    error
		want   []string
	}{
		{"booking confirmed", Bookings, nil, []string{api.QueryMyBookings}},
		{"booking rejected", Bookings, &api.APIError{Status: http.StatusConflict, Message: "Booking is not pending"}, nil},
		{"movie without dependents", Movies, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{err: tt.err}
			schema := tt.schema
			schema.Actions = []string{"confirm"}
			r := NewResource[response.BookingResponse](tr, schema, &ui.Recorder{}, zap.NewNop())

			_, _ = r.Action(context.Background(), 8, "confirm")
			if !slices.Equal(tr.invalidated, tt.want) {
				t.Errorf("invalidated = %v, want %v", tr.invalidated, tt.want)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	var nilPtr *string
	tests := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{"", true},
		{" ", true},
		{"x", false},
		{0, true},
		{3, false},
		{[]int64{}, true},
		{[]int64{1}, false},
		{nilPtr, true},
		{false, true},
	}

	for _, tt := range tests {
		if got := isBlank(tt.v); got != tt.want {
			t.Errorf("isBlank(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
