package carousel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideCount(t *testing.T) {
	tests := []struct {
		items, perPage, want int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{7, 2, 4},
		{5, 1, 5},
		{5, 0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlideCount(tt.items, tt.perPage), "%d/%d", tt.items, tt.perPage)
		assert.Equal(t, tt.want, New(tt.items, tt.perPage).Slides())
	}
}

func TestCarousel_CyclicNavigation(t *testing.T) {
	c := New(7, 3) // 3 slides

	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 0, c.Next(), "next from the last slide returns to 0")
	assert.Equal(t, 2, c.Prev(), "prev from slide 0 returns to the last slide")
	assert.Equal(t, 1, c.Goto(1))
	assert.Equal(t, 2, c.Goto(-1))
	assert.Equal(t, 0, c.Goto(3))
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 1, c.NextOf(0))
	assert.Equal(t, 2, c.PrevOf(0))
}

func TestCarousel_Empty(t *testing.T) {
	c := New(0, 3)

	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())
	start, end := c.Bounds(4)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, []string{"a", "b"}, Page(items, 2, 0))
	assert.Equal(t, []string{"e"}, Page(items, 2, 2))
	assert.Equal(t, []string{"a", "b"}, Page(items, 2, 3))
	assert.Empty(t, Page([]string{}, 2, 0))
}

func TestAutoplay(t *testing.T) {
	c := New(6, 2)
	var advances atomic.Int32

	a := StartAutoplay(context.Background(), c, 5*time.Millisecond, func(int) {
		advances.Add(1)
	})

	require.Eventually(t, func() bool { return advances.Load() >= 3 }, time.Second, time.Millisecond)

	a.Pause()
	assert.True(t, a.Paused())
	time.Sleep(10 * time.Millisecond) // let an in-flight tick finish
	paused := advances.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, paused, advances.Load(), "paused autoplay must not advance")

	a.Resume()
	require.Eventually(t, func() bool { return advances.Load() > paused }, time.Second, time.Millisecond)

	a.Stop()
	a.Stop()
	stopped := advances.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, advances.Load())
}

func TestAutoplay_SingleSlideNeverAdvances(t *testing.T) {
	c := New(2, 3)
	var advances atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	a := StartAutoplay(ctx, c, time.Millisecond, func(int) { advances.Add(1) })

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-a.Done()

	assert.Zero(t, advances.Load())
	assert.Equal(t, 0, c.Current())
}
