package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create relies on the unique index on profiles.user_id to reject a second profile.
func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, skills, portfolio, availability, hourly_rate, experience_level, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Skills, p.Portfolio, string(p.Availability), p.HourlyRate, string(p.ExperienceLevel), p.Bio)

	return mapError(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt), "insert profile")
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var (
		p            entity.Profile
		availability string
		level        string
	)

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, skills, portfolio, availability, hourly_rate, experience_level, bio, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)

	if err := row.Scan(&p.ID, &p.UserID, &p.Skills, &p.Portfolio, &availability, &p.HourlyRate,
		&level, &p.Bio, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err, "get profile by user id")
	}
	p.Availability = entity.Availability(availability)
	p.ExperienceLevel = entity.ExperienceLevel(level)

	return &p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
