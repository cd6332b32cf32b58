// Package site loads the sections of the public portfolio pages.
package site

import (
	"context"
	"errors"
	"reflect"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// State of a page section
type State int

// Section states
const (
	Loading State = iota
	Empty
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Section is the outcome of loading one page section
type Section[T any] struct {
	Name    string
	State   State
	Data    T
	Message string
}

func (s Section[T]) IsLoading() bool { return s.State == Loading }
func (s Section[T]) IsEmpty() bool   { return s.State == Empty }
func (s Section[T]) IsReady() bool   { return s.State == Ready }
func (s Section[T]) IsFailed() bool  { return s.State == Failed }

// Load fetches one section. A fetch cut short by ctx leaves the section
// Loading; other failures make it Failed. Empty lists and zero records are
// Empty.
func Load[T any](ctx context.Context, name string, fetch func(context.Context) api.Result[T]) Section[T] {
	res := fetch(ctx)
	if res.OK() {
		return classify(Section[T]{Name: name, Data: res.Data})
	}

	if ctx.Err() != nil && errors.Is(res.Error(), ctx.Err()) {
		return Section[T]{Name: name, State: Loading}
	}
	logger.FromContext(ctx).Warn("Section failed to load",
		zap.String("section", name),
		zap.String("kind", res.Err.Kind.String()),
		zap.String("message", res.Message()))
	return Section[T]{Name: name, State: Failed, Message: res.Message()}
}

// Map transforms the data of a Ready section and re-checks emptiness
func Map[T, U any](s Section[T], f func(T) U) Section[U] {
	out := Section[U]{Name: s.Name, State: s.State, Message: s.Message}
	if s.State == Ready {
		out.Data = f(s.Data)
		return classify(out)
	}
	return out
}

func classify[T any](s Section[T]) Section[T] {
	if isEmpty(s.Data) {
		s.State = Empty
	} else {
		s.State = Ready
	}
	return s
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	}
	return rv.IsZero()
}
