package site

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/carousel"
)

// Autoplays tracks the running carousel autoplay streams so a page can
// pause and resume its stream while the pointer hovers the carousel.
type Autoplays struct {
	interval time.Duration

	mu      sync.Mutex
	running map[string]*carousel.Autoplay
}

// NewAutoplays creates a registry advancing every interval
func NewAutoplays(interval time.Duration) *Autoplays {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Autoplays{interval: interval, running: make(map[string]*carousel.Autoplay)}
}

// Start begins advancing a carousel of items shown perPage at a time,
// starting from slide start. The stream ends when ctx is cancelled.
func (a *Autoplays) Start(ctx context.Context, items, perPage, start int, onAdvance func(slide int)) (string, *carousel.Autoplay) {
	c := carousel.New(items, perPage)
	c.Goto(start)

	id := uuid.NewString()
	ap := carousel.StartAutoplay(ctx, c, a.interval, onAdvance)

	a.mu.Lock()
	a.running[id] = ap
	a.mu.Unlock()

	go func() {
		<-ap.Done()
		a.mu.Lock()
		delete(a.running, id)
		a.mu.Unlock()
	}()
	return id, ap
}

// Pause pauses stream id. ok is false for unknown streams.
func (a *Autoplays) Pause(id string) bool {
	ap := a.get(id)
	if ap == nil {
		return false
	}
	ap.Pause()
	return true
}

// Resume resumes stream id. ok is false for unknown streams.
func (a *Autoplays) Resume(id string) bool {
	ap := a.get(id)
	if ap == nil {
		return false
	}
	ap.Resume()
	return true
}

// Running returns the number of live streams
func (a *Autoplays) Running() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.running)
}

func (a *Autoplays) get(id string) *carousel.Autoplay {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running[id]
}
