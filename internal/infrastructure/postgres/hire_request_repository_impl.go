package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
)

type HireRequestRepository struct {
	pool *pgxpool.Pool
}

func NewHireRequestRepository(pool *pgxpool.Pool) *HireRequestRepository {
	return &HireRequestRepository{pool: pool}
}

func (r *HireRequestRepository) Create(ctx context.Context, h *entity.HireRequest) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO hire_requests (client_id, talent_id, details, project_details, budget)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, h.ClientID, h.TalentID, h.Details, h.ProjectDetails, h.Budget)

	return mapError(row.Scan(&h.ID, &h.CreatedAt), "insert hire request")
}

// ListByClient orders by the insertion sequence, not created_at, so ties keep storage order.
func (r *HireRequestRepository) ListByClient(ctx context.Context, clientID string) ([]entity.HireRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, client_id, talent_id, details, project_details, budget, created_at
		FROM hire_requests
		WHERE client_id = $1
		ORDER BY seq
	`, clientID)
	if err != nil {
		return nil, mapError(err, "list hire requests")
	}
	defer rows.Close()

	out := make([]entity.HireRequest, 0)
	for rows.Next() {
		var h entity.HireRequest
		if err := rows.Scan(&h.ID, &h.ClientID, &h.TalentID, &h.Details, &h.ProjectDetails, &h.Budget, &h.CreatedAt); err != nil {
			return nil, mapError(err, "scan hire request")
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate hire requests")
	}
	return out, nil
}

var _ repository.HireRequestRepository = (*HireRequestRepository)(nil)
