package site

import (
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/carousel"
)

// Pager is the carousel position of a section, rendered as prev/next links
type Pager struct {
	Page    int
	Slides  int
	Prev    int
	Next    int
	PerPage int
}

// Pages lists the slide indexes for dot navigation
func (p Pager) Pages() []int {
	out := make([]int, p.Slides)
	for i := range out {
		out[i] = i
	}
	return out
}

// HasControls reports whether there is more than one slide
func (p Pager) HasControls() bool { return p.Slides > 1 }

// paginate positions a carousel of items at page and returns the visible items
func paginate[T any](items []T, perPage, page int) ([]T, Pager) {
	c := carousel.New(len(items), perPage)
	current := c.Goto(page)
	return carousel.Page(items, c.PerPage(), current), Pager{
		Page:    current,
		Slides:  c.Slides(),
		Prev:    c.PrevOf(current),
		Next:    c.NextOf(current),
		PerPage: c.PerPage(),
	}
}
