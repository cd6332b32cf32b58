package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// Resource is the CRUD surface shared by every backend collection. Reads
// are public; writes send the bearer token from the context.
type Resource[T any] struct {
	client *Client
	base   string
	name   string // plural, used in op names and messages
	single string
}

func newResource[T any](c *Client, base, name, single string) Resource[T] {
	return Resource[T]{client: c, base: base, name: name, single: single}
}

func (r Resource[T]) item(id int64) string {
	return config.Item(r.base, strconv.FormatInt(id, 10))
}

// GetAll lists the collection. A null payload yields an empty list.
func (r Resource[T]) GetAll(ctx context.Context) Result[[]T] {
	return r.list(ctx, r.name+".getAll", r.base)
}

func (r Resource[T]) list(ctx context.Context, op, url string) Result[[]T] {
	res := do[[]T](ctx, r.client, call{
		op:      op,
		method:  http.MethodGet,
		url:     url,
		failMsg: "Failed to load " + r.name,
	})
	if res.OK() && res.Data == nil {
		res.Data = []T{}
	}
	return res
}

// GetByID fetches one record
func (r Resource[T]) GetByID(ctx context.Context, id int64) Result[T] {
	return do[T](ctx, r.client, call{
		op:      r.name + ".getById",
		method:  http.MethodGet,
		url:     r.item(id),
		failMsg: "Failed to load " + r.single,
	})
}

// Create posts a new record and returns the stored version
func (r Resource[T]) Create(ctx context.Context, v T) Result[T] {
	return do[T](ctx, r.client, call{
		op:      r.name + ".create",
		method:  http.MethodPost,
		url:     r.base,
		body:    v,
		auth:    true,
		failMsg: "Failed to create " + r.single,
	})
}

// Update replaces the record with the given id
func (r Resource[T]) Update(ctx context.Context, id int64, v T) Result[T] {
	return do[T](ctx, r.client, call{
		op:      r.name + ".update",
		method:  http.MethodPut,
		url:     r.item(id),
		body:    v,
		auth:    true,
		failMsg: "Failed to update " + r.single,
	})
}

// Delete removes the record with the given id
func (r Resource[T]) Delete(ctx context.Context, id int64) Result[Empty] {
	res := do[Empty](ctx, r.client, call{
		op:      r.name + ".delete",
		method:  http.MethodDelete,
		url:     r.item(id),
		auth:    true,
		failMsg: "Failed to delete " + r.single,
	})
	if res.Err != nil && res.Err.Kind == KindDecode {
		// Some deletes echo a message body; the delete itself succeeded.
		return Ok(Empty{})
	}
	return res
}
