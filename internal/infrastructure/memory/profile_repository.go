package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	byUserID map[string]entity.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byUserID: make(map[string]entity.Profile)}
}

func (r *ProfileRepository) Create(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUserID[p.UserID]; exists {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	stored.Skills = append([]string(nil), p.Skills...)
	r.byUserID[p.UserID] = stored
	return nil
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Skills = append([]string(nil), p.Skills...)
	return &p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
