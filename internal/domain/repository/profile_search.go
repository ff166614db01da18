package repository

import (
	"context"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
)

// ProfileQuery filters a talent search. Empty fields are ignored.
type ProfileQuery struct {
	Text            string
	Availability    string
	ExperienceLevel string
	Size            int
}

// ProfileSearchIndex is a secondary, eventually consistent view of profiles.
type ProfileSearchIndex interface {
	Index(ctx context.Context, p *entity.Profile) error
	Search(ctx context.Context, q ProfileQuery) ([]entity.Profile, error)
}
