package carousel

import (
	"context"
	"sync"
	"time"
)

// Autoplay advances a carousel on a fixed interval until stopped. While
// paused (pointer hover) ticks are skipped.
type Autoplay struct {
	carousel  *Carousel
	interval  time.Duration
	onAdvance func(slide int)

	mu       sync.Mutex
	paused   bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// StartAutoplay starts advancing c every interval. onAdvance, if set, is
// called with the new slide index from the autoplay goroutine. Cancelling
// ctx stops the autoplay.
func StartAutoplay(ctx context.Context, c *Carousel, interval time.Duration, onAdvance func(slide int)) *Autoplay {
	a := &Autoplay{
		carousel:  c,
		interval:  interval,
		onAdvance: onAdvance,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go a.run(ctx)
	return a
}

func (a *Autoplay) run(ctx context.Context) {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stop:
			return
		case <-ticker.C:
			if a.Paused() || a.carousel.Slides() <= 1 {
				continue
			}
			slide := a.carousel.Next()
			if a.onAdvance != nil {
				a.onAdvance(slide)
			}
		}
	}
}

// Pause suspends advancing
func (a *Autoplay) Pause() {
	a.mu.Lock()
	a.paused = true
	a.mu.Unlock()
}

// Resume continues advancing
func (a *Autoplay) Resume() {
	a.mu.Lock()
	a.paused = false
	a.mu.Unlock()
}

// Paused reports whether the autoplay is paused
func (a *Autoplay) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// Stop ends the autoplay and waits for its goroutine to exit
func (a *Autoplay) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
	<-a.done
}

// Done is closed once the autoplay goroutine has exited
func (a *Autoplay) Done() <-chan struct{} {
	return a.done
}
