// Package admin implements the CMS operations shared by every managed
// resource.
package admin

import (
	"context"
	"strconv"
	"strings"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
)

// Resource is the backend CRUD surface a Manager drives
type Resource[T any] interface {
	GetAll(ctx context.Context) api.Result[[]T]
	GetByID(ctx context.Context, id int64) api.Result[T]
	Create(ctx context.Context, v T) api.Result[T]
	Update(ctx context.Context, id int64, v T) api.Result[T]
	Delete(ctx context.Context, id int64) api.Result[api.Empty]
}

// FlashKind is the colour of a banner
type FlashKind string

// Banner kinds
const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot banner shown above a page
type Flash struct {
	Kind    FlashKind
	Message string
}

// IsSuccess reports whether the banner reports success
func (f Flash) IsSuccess() bool { return f.Kind == FlashSuccess }

// Success builds a success banner
func Success(msg string) Flash { return Flash{Kind: FlashSuccess, Message: msg} }

// Failure builds an error banner
func Failure(msg string) Flash { return Flash{Kind: FlashError, Message: msg} }

// Manager lists, loads, saves and deletes records of one resource
type Manager[T any] struct {
	res       Resource[T]
	single    string
	defaults  func() T
	normalize func(*T)
	order     func([]T) []T
}

// ManagerOption configures a Manager
type ManagerOption[T any] func(*Manager[T])

// WithNormalize runs f on every record before it is saved
func WithNormalize[T any](f func(*T)) ManagerOption[T] {
	return func(m *Manager[T]) { m.normalize = f }
}

// WithOrder sorts listings with f
func WithOrder[T any](f func([]T) []T) ManagerOption[T] {
	return func(m *Manager[T]) { m.order = f }
}

// NewManager creates a manager. single names one record in banners, e.g.
// "Project"; defaults is the blank record of the create form.
func NewManager[T any](res Resource[T], single string, defaults func() T, opts ...ManagerOption[T]) *Manager[T] {
	m := &Manager[T]{res: res, single: single, defaults: defaults}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Single returns the record name used in banners
func (m *Manager[T]) Single() string { return m.single }

// List returns every record in display order
func (m *Manager[T]) List(ctx context.Context) api.Result[[]T] {
	res := m.res.GetAll(ctx)
	if res.OK() && m.order != nil {
		res.Data = m.order(res.Data)
	}
	return res
}

// Load returns the record to edit. An empty id yields the default record
// and editing false.
func (m *Manager[T]) Load(ctx context.Context, id string) (T, bool, *api.Error) {
	if strings.TrimSpace(id) == "" {
		return m.defaults(), false, nil
	}
	key, err := ParseID(id)
	if err != nil {
		var zero T
		return zero, true, err
	}
	res := m.res.GetByID(ctx, key)
	return res.Data, true, res.Err
}

// Save creates the record when id is empty and updates it otherwise
func (m *Manager[T]) Save(ctx context.Context, id string, rec T) (T, Flash, *api.Error) {
	if m.normalize != nil {
		m.normalize(&rec)
	}

	if strings.TrimSpace(id) == "" {
		res := m.res.Create(ctx, rec)
		if !res.OK() {
			return rec, Failure(res.Message()), res.Err
		}
		return res.Data, Success(m.single + " created successfully!"), nil
	}

	key, err := ParseID(id)
	if err != nil {
		return rec, Failure(err.Message), err
	}
	res := m.res.Update(ctx, key, rec)
	if !res.OK() {
		return rec, Failure(res.Message()), res.Err
	}
	return res.Data, Success(m.single + " updated successfully!"), nil
}

// Delete removes the record with id
func (m *Manager[T]) Delete(ctx context.Context, id string) (Flash, *api.Error) {
	key, err := ParseID(id)
	if err != nil {
		return Failure(err.Message), err
	}
	res := m.res.Delete(ctx, key)
	if !res.OK() {
		return Failure(res.Message()), res.Err
	}
	return Success(m.single + " deleted successfully!"), nil
}

// ParseID parses a positive record id
func ParseID(id string) (int64, *api.Error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, api.Validation("Invalid id", map[string]string{"id": "must be a positive number"}, err)
	}
	return n, nil
}
