// Package session holds the TokenStore implementations for admin sessions.
package session

import (
	"context"
	"sync"
	"time"

	domain "github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
)

const defaultCleanupInterval = 5 * time.Minute

// bucket holds one session's values
type bucket struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryStore keeps session values in process memory. Every Set extends
// the session's lifetime by ttl. Suitable for single-instance deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	buckets   map[string]*bucket
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore creates a store and starts its cleanup goroutine
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		buckets:  make(map[string]*bucket),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Get returns the value of key, or domain.ErrNoValue
func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[sessionID]
	if !ok || s.now().After(b.expiresAt) {
		return "", domain.ErrNoValue
	}
	v, ok := b.values[key]
	if !ok {
		return "", domain.ErrNoValue
	}
	return v, nil
}

// Set stores value and refreshes the session's expiry
func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[sessionID]
	if !ok || s.now().After(b.expiresAt) {
		b = &bucket{values: make(map[string]string)}
		s.buckets[sessionID] = b
	}
	b.values[key] = value
	b.expiresAt = s.now().Add(s.ttl)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[sessionID]; ok {
		delete(b.values, key)
		if len(b.values) == 0 {
			delete(s.buckets, sessionID)
		}
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of live sessions
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired sessions
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, b := range s.buckets {
		if now.After(b.expiresAt) {
			delete(s.buckets, id)
		}
	}
}

var _ domain.TokenStore = (*MemoryStore)(nil)
