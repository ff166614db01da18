package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
)

// HireRequestRepository appends to a slice so listing keeps insertion order.
type HireRequestRepository struct {
	mu   sync.RWMutex
	rows []entity.HireRequest
}

func NewHireRequestRepository() *HireRequestRepository {
	return &HireRequestRepository{}
}

func (r *HireRequestRepository) Create(_ context.Context, h *entity.HireRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h.ID = uuid.NewString()
	h.CreatedAt = time.Now().UTC()
	stored := *h
	if h.Budget != nil {
		b := *h.Budget
		stored.Budget = &b
	}
	r.rows = append(r.rows, stored)
	return nil
}

func (r *HireRequestRepository) ListByClient(_ context.Context, clientID string) ([]entity.HireRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.HireRequest, 0)
	for _, h := range r.rows {
		if h.ClientID == clientID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.HireRequestRepository = (*HireRequestRepository)(nil)
