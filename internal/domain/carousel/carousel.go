// Package carousel paginates an in-memory list into slides and navigates
// them cyclically.
package carousel

import "sync"

// Carousel tracks the current slide over n items shown perPage at a time.
// It is safe for concurrent use.
type Carousel struct {
	mu      sync.Mutex
	items   int
	perPage int
	current int
}

// New creates a carousel positioned on slide 0. perPage below 1 is treated
// as 1.
func New(items, perPage int) *Carousel {
	if perPage < 1 {
		perPage = 1
	}
	if items < 0 {
		items = 0
	}
	return &Carousel{items: items, perPage: perPage}
}

// SlideCount returns ceil(items/perPage), 0 for an empty list
func SlideCount(items, perPage int) int {
	if items <= 0 {
		return 0
	}
	if perPage < 1 {
		perPage = 1
	}
	return (items + perPage - 1) / perPage
}

// Slides returns the number of slides
func (c *Carousel) Slides() int {
	return SlideCount(c.items, c.perPage)
}

// PerPage returns the page size
func (c *Carousel) PerPage() int {
	return c.perPage
}

// Current returns the current slide index
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Next advances one slide, wrapping from the last slide to 0
func (c *Carousel) Next() int {
	return c.move(1)
}

// Prev goes back one slide, wrapping from 0 to the last slide
func (c *Carousel) Prev() int {
	return c.move(-1)
}

// Goto jumps to slide i. Out of range values wrap, so Goto(-1) is the last
// slide.
func (c *Carousel) Goto(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = wrap(i, c.Slides())
	return c.current
}

func (c *Carousel) move(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = wrap(c.current+delta, c.Slides())
	return c.current
}

// Bounds returns the [start, end) item range of slide i
func (c *Carousel) Bounds(i int) (start, end int) {
	slides := c.Slides()
	if slides == 0 {
		return 0, 0
	}
	i = wrap(i, slides)
	start = i * c.perPage
	end = min(start+c.perPage, c.items)
	return start, end
}

// NextOf returns the slide after i without moving the carousel
func (c *Carousel) NextOf(i int) int { return wrap(i+1, c.Slides()) }

// PrevOf returns the slide before i
func (c *Carousel) PrevOf(i int) int { return wrap(i-1, c.Slides()) }

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Page returns the items of slide page, wrapping page into range
func Page[T any](items []T, perPage, page int) []T {
	c := New(len(items), perPage)
	start, end := c.Bounds(page)
	return items[start:end]
}
