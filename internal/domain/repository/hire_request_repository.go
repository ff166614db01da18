package repository

import (
	"context"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
)

type HireRequestRepository interface {
	Create(ctx context.Context, h *entity.HireRequest) error
	// ListByClient returns requests in insertion order, never nil.
	ListByClient(ctx context.Context, clientID string) ([]entity.HireRequest, error)
}
