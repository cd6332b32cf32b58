package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		res     api.Result[[]string]
		want    State
		wantMsg string
	}{
		{name: "ready", res: api.Ok([]string{"a"}), want: Ready},
		{name: "empty list", res: api.Ok([]string{}), want: Empty},
		{name: "nil list", res: api.Ok[[]string](nil), want: Empty},
		{
			name:    "failed",
			res:     api.Fail[[]string](&api.Error{Kind: api.KindHTTP, Status: 500, Message: "Failed to load skills"}),
			want:    Failed,
			wantMsg: "Failed to load skills",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Load(ctx, "skills", func(context.Context) api.Result[[]string] { return tt.res })
			assert.Equal(t, tt.want, s.State)
			assert.Equal(t, tt.wantMsg, s.Message)
			assert.Equal(t, "skills", s.Name)
		})
	}
}

func TestLoad_ZeroRecordIsEmpty(t *testing.T) {
	s := Load(context.Background(), "profile", func(context.Context) api.Result[portfolio.Profile] {
		return api.Ok(portfolio.Profile{})
	})
	assert.True(t, s.IsEmpty())
}

func TestLoad_CancelledStaysLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := Load(ctx, "projects", func(ctx context.Context) api.Result[[]int] {
		return api.Fail[[]int](&api.Error{Kind: api.KindNetwork, Message: "Request cancelled", Err: ctx.Err()})
	})
	assert.True(t, s.IsLoading())
	assert.Empty(t, s.Message)
}

func TestMap(t *testing.T) {
	ready := Section[[]int]{Name: "n", State: Ready, Data: []int{1, 2, 3}}

	evens := Map(ready, func(in []int) []int {
		var out []int
		for _, n := range in {
			if n%2 == 0 {
				out = append(out, n)
			}
		}
		return out
	})
	assert.True(t, evens.IsReady())
	assert.Equal(t, []int{2}, evens.Data)

	none := Map(ready, func([]int) []int { return nil })
	assert.True(t, none.IsEmpty(), "filtering everything out makes the section empty")

	failed := Map(Section[[]int]{State: Failed, Message: "x"}, func([]int) []int { t.Fatal("must not run"); return nil })
	assert.True(t, failed.IsFailed())
	assert.Equal(t, "x", failed.Message)
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	visible, p := paginate(items, 3, 2)
	assert.Equal(t, []int{6}, visible)
	assert.Equal(t, Pager{Page: 2, Slides: 3, Prev: 1, Next: 0, PerPage: 3}, p)

	visible, p = paginate(items, 3, -1)
	assert.Equal(t, []int{6}, visible, "negative pages wrap to the last slide")
	assert.Equal(t, 2, p.Page)

	visible, p = paginate([]int{}, 3, 5)
	assert.Empty(t, visible)
	assert.False(t, p.HasControls())
	assert.Empty(t, p.Pages())
}
