package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence sink contract: one durable append per
// accepted submission. Append is atomic from the caller's point of view —
// either the row is recorded or an error comes back, never a partial row.
type Repository interface {
	Create(ctx context.Context, lead *Lead) (*Lead, error)
}

// InMemoryRepository keeps leads in memory. Used in tests and as the
// fallback sink when no store is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Create stores the lead in memory, assigning ID and timestamp.
func (r *InMemoryRepository) Create(ctx context.Context, lead *Lead) (*Lead, error) {
	stored := *lead
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.leads[stored.ID] = &stored
	r.mu.Unlock()

	return &stored, nil
}

// GetByID retrieves a stored lead, or nil when absent.
func (r *InMemoryRepository) GetByID(id string) *Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.leads[id]
}

// Len reports the number of stored leads.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}
