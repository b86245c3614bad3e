// Package memory keeps per-context history of prior decision outcomes and
// derives trajectory, fatigue, and trust insights from it. The default
// store is in-process; a Postgres-backed store can be slotted in behind
// the same interface.
package memory

import (
	"context"
	"sync"

	"decisionscan/pkg/models"
)

// DefaultRingSize bounds per-context history.
const DefaultRingSize = 50

// Store is the persistence seam. Record appends, History reads in
// chronological order.
type Store interface {
	Record(ctx context.Context, contextID string, rec models.HistoricalOutcome) error
	History(contextID string) ([]models.HistoricalOutcome, error)
}

type ring struct {
	mu      sync.RWMutex
	records []models.HistoricalOutcome
}

// Ring is the in-process Store: a bounded ring buffer per context id.
// Operations on distinct contexts never contend; there is no global write
// lock beyond the map itself.
type Ring struct {
	size int

	mu       sync.RWMutex
	contexts map[string]*ring
}

// NewRing builds an in-process store. size <= 0 selects the default.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{size: size, contexts: make(map[string]*ring)}
}

func (r *Ring) contextRing(contextID string) *ring {
	r.mu.RLock()
	c, ok := r.contexts[contextID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.contexts[contextID]; ok {
		return c
	}
	c = &ring{}
	r.contexts[contextID] = c
	return c
}

// Record appends, evicting the oldest record on overflow.
func (r *Ring) Record(_ context.Context, contextID string, rec models.HistoricalOutcome) error {
	c := r.contextRing(contextID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	if len(c.records) > r.size {
		c.records = c.records[len(c.records)-r.size:]
	}
	return nil
}

// History returns a copy of the context's records, oldest first.
func (r *Ring) History(contextID string) ([]models.HistoricalOutcome, error) {
	c := r.contextRing(contextID)
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.HistoricalOutcome, len(c.records))
	copy(out, c.records)
	return out, nil
}
