package repository

import (
	"context"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
)

type ProfileRepository interface {
	// Create returns ErrDuplicate when the owner already has a profile.
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
}
