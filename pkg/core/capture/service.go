package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"decisionscan/pkg/models"
)

// ServiceConfig tunes the capture cache.
type ServiceConfig struct {
	CacheTTL time.Duration // successful captures live this long, default 30m
}

type cacheEntry struct {
	cap     *models.Capture
	expires time.Time
}

// Service fronts the renderer with a per-URL TTL cache and a single-flight
// guard: concurrent requests for the same normalized URL share one render.
type Service struct {
	cfg      ServiceConfig
	renderer Renderer

	mu     sync.Mutex
	cache  map[string]cacheEntry
	flight singleflight.Group
}

// NewService wraps a renderer with caching.
func NewService(cfg ServiceConfig, renderer Renderer) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Minute
	}
	return &Service{
		cfg:      cfg,
		renderer: renderer,
		cache:    make(map[string]cacheEntry),
	}
}

// Capture returns the capture for rawURL, rendering if the cache misses.
// refresh bypasses and replaces any cached entry. The returned Capture is
// never nil; invalid URLs and render failures come back as status error.
func (s *Service) Capture(ctx context.Context, rawURL string, refresh bool, base string) *models.Capture {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return &models.Capture{
			URL:    rawURL,
			Status: models.CaptureError,
			Shots: map[models.Viewport]*models.ViewportShot{
				models.ViewportDesktop: {Status: "error", Error: ErrTagNavigation},
				models.ViewportMobile:  {Status: "error", Error: ErrTagNavigation},
			},
			CapturedAt: time.Now(),
		}
	}

	if refresh {
		s.invalidate(normalized)
	} else if cached, ok := s.lookup(normalized); ok {
		fmt.Printf("[CAPTURE] Cache hit for %s\n", normalized)
		return cached
	}

	v, _, _ := s.flight.Do(normalized, func() (interface{}, error) {
		// Re-check inside the flight: a peer may have just populated it.
		if !refresh {
			if cached, ok := s.lookup(normalized); ok {
				return cached, nil
			}
		}
		cap := s.renderer.Render(ctx, normalized, base)
		// Only captures with at least one usable shot are worth caching.
		if cap.Status != models.CaptureError {
			s.store(normalized, cap)
		}
		return cap, nil
	})
	return v.(*models.Capture)
}

func (s *Service) lookup(key string) (*models.Capture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		delete(s.cache, key)
		return nil, false
	}
	return entry.cap, true
}

func (s *Service) store(key string, cap *models.Capture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{cap: cap, expires: time.Now().Add(s.cfg.CacheTTL)}
}

func (s *Service) invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, key)
}
