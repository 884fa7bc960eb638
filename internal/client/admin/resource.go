package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"cinema-ticket/internal/client/api"
	"cinema-ticket/internal/client/ui"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

var (
	ErrReadOnly      = errors.New("resource is read-only")
	ErrUnknownAction = errors.New("unknown action")
)

// FieldError lists required fields missing from a form.
type FieldError struct {
	Missing []string
}

func (e *FieldError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Transport is the generic half of the REST client.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	InvalidateQueries(prefix string)
}

// Resource is list/get/create/update/delete for one schema. T is the
// response item type.
type Resource[T any] struct {
	transport Transport
	schema    Schema
	notify    ui.Notifier
	log       *zap.Logger
}

func NewResource[T any](transport Transport, schema Schema, notify ui.Notifier, log *zap.Logger) *Resource[T] {
	return &Resource[T]{
		transport: transport,
		schema:    schema,
		notify:    notify,
		log:       log.With(zap.String("component", "admin"), zap.String("resource", schema.Path)),
	}
}

func (r *Resource[T]) Schema() Schema { return r.schema }

func (r *Resource[T]) itemPath(id int64) string {
	return r.schema.Path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T]) List(ctx context.Context, page, perPage int) (*response.PaginatedResponse[T], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}

	var out response.PaginatedResponse[T]
	if err := r.transport.Get(ctx, r.schema.Path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.transport.Get(ctx, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, input map[string]any) (*T, error) {
	if r.schema.ReadOnly {
		return nil, ErrReadOnly
	}
	if err := r.Validate(input, true); err != nil {
		return nil, err
	}

	var out T
	err := r.transport.Post(ctx, r.schema.Path, input, &out)
	if err := r.report(err, "created", "create"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int64, input map[string]any) (*T, error) {
	if r.schema.ReadOnly {
		return nil, ErrReadOnly
	}
	if err := r.Validate(input, false); err != nil {
		return nil, err
	}

	var out T
	err := r.transport.Put(ctx, r.itemPath(id), input, &out)
	if err := r.report(err, "updated", "update"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if r.schema.ReadOnly {
		return ErrReadOnly
	}
	return r.report(r.transport.Delete(ctx, r.itemPath(id), nil), "deleted", "delete")
}

// Action runs one of the schema's item actions, e.g. confirm.
func (r *Resource[T]) Action(ctx context.Context, id int64, action string) (*T, error) {
	if !slices.Contains(r.schema.Actions, action) {
		return nil, fmt.Errorf("%w %q for %s", ErrUnknownAction, action, r.schema.Name)
	}

	var out T
	err := r.transport.Put(ctx, r.itemPath(id)+"/"+action, nil, &out)
	if err := r.report(err, action+"ed", action); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate checks required fields. Update skips CreateOnly fields.
func (r *Resource[T]) Validate(input map[string]any, create bool) error {
	var missing []string
	for _, f := range r.schema.Fields {
		if !f.Required || (f.CreateOnly && !create) {
			continue
		}
		if isBlank(input[f.Name]) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &FieldError{Missing: missing}
	}
	return nil
}

// report toasts the outcome of a mutation and passes err through. A
// success also drops the cached reads the schema invalidates.
func (r *Resource[T]) report(err error, done, verb string) error {
	if err != nil {
		msg := api.ErrorMessage(err, fmt.Sprintf("Failed to %s %s", verb, strings.ToLower(r.schema.Name)))
		r.log.Warn("Admin mutation failed", zap.String("action", verb), zap.Error(err))
		r.notify.Error(msg)
		return err
	}
	for _, prefix := range r.schema.Invalidates {
		r.transport.InvalidateQueries(prefix)
	}
	r.notify.Success(fmt.Sprintf("%s %s", r.schema.Name, done))
	return nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil()
	}
	return rv.IsZero()
}
