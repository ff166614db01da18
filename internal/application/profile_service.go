package application

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-talent-marketplace/pkg/apperror"
	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
	"github.com/oksasatya/go-talent-marketplace/pkg/validation"
)

const (
	msgProfileNotFound = "Profile not found"
	msgProfileExists   = "Profile already exists"
	msgUploadDisabled  = "portfolio upload unavailable"

	portfolioFolder = "portfolios"
)

var portfolioTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
}

type ProfileService struct {
	Repo              repo.ProfileRepository
	Users             repo.UserRepository
	Index             repo.ProfileSearchIndex
	Cache             ProfileCache
	Storage           FileStorage
	Validator         *validation.Validator
	EnforceReferences bool
	Logger            *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, v *validation.Validator, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		Repo:              profiles,
		Users:             users,
		Validator:         v,
		EnforceReferences: true,
		Logger:            logger,
	}
}

type CreateProfileInput struct {
	Skills          []string `json:"skills" validate:"required,min=1,dive,required"`
	Portfolio       string   `json:"portfolio" validate:"required"`
	Availability    string   `json:"availability" validate:"required,availability"`
	HourlyRate      *float64 `json:"hourlyRate" validate:"required,gte=0"`
	ExperienceLevel string   `json:"experienceLevel" validate:"required,experiencelevel"`
	Bio             string   `json:"bio" validate:"max=2000"`
}

type SearchInput struct {
	Query           string `form:"q" json:"q" validate:"max=200"`
	Availability    string `form:"availability" json:"availability" validate:"omitempty,availability"`
	ExperienceLevel string `form:"experienceLevel" json:"experienceLevel" validate:"omitempty,experiencelevel"`
	Size            int    `form:"size" json:"size" validate:"omitempty,min=1,max=50"`
}

// Create stores the single profile owned by ownerID.
func (s *ProfileService) Create(ctx context.Context, ownerID string, in CreateProfileInput) (*entity.Profile, error) {
	if in.Skills != nil {
		skills := make([]string, len(in.Skills))
		for i, sk := range in.Skills {
			skills[i] = strings.TrimSpace(sk)
		}
		in.Skills = skills
	}
	if fe := s.Validator.Struct(in); fe != nil {
		return nil, apperror.NewValidation(fe.Field, fe.Message)
	}

	if s.EnforceReferences {
		if _, err := s.Users.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, apperror.NewNotFound(msgUserNotFound)
			}
			return nil, s.internal(err, "lookup profile owner")
		}
	}

	p := &entity.Profile{
		UserID:          ownerID,
		Skills:          in.Skills,
		Portfolio:       strings.TrimSpace(in.Portfolio),
		Availability:    entity.Availability(in.Availability),
		HourlyRate:      *in.HourlyRate,
		ExperienceLevel: entity.ExperienceLevel(in.ExperienceLevel),
		Bio:             in.Bio,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, apperror.NewConflict(msgProfileExists, err)
		case errors.Is(err, repo.ErrNotFound):
			return nil, apperror.NewNotFound(msgUserNotFound)
		}
		return nil, s.internal(err, "create profile")
	}

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, ownerID); err != nil {
			s.warn(err, "profile cache invalidate failed", ownerID)
		}
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, p); err != nil {
			s.warn(err, "profile index failed", ownerID)
		}
	}
	return p, nil
}

// GetByUserID is a public read; misses go to storage and fill the cache.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	if s.Cache != nil {
		var cached entity.Profile
		hit, err := s.Cache.Get(ctx, userID, &cached)
		if err != nil {
			s.warn(err, "profile cache read failed", userID)
		}
		if hit {
			return &cached, nil
		}
	}

	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewNotFound(msgProfileNotFound)
		}
		return nil, s.internal(err, "get profile")
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, userID, p); err != nil {
			s.warn(err, "profile cache write failed", userID)
		}
	}
	return p, nil
}

// Search returns an empty list when no search index is configured.
func (s *ProfileService) Search(ctx context.Context, in SearchInput) ([]entity.Profile, error) {
	if fe := s.Validator.Struct(in); fe != nil {
		return nil, apperror.NewValidation(fe.Field, fe.Message)
	}
	if s.Index == nil {
		return []entity.Profile{}, nil
	}
	res, err := s.Index.Search(ctx, repo.ProfileQuery{
		Text:            in.Query,
		Availability:    in.Availability,
		ExperienceLevel: in.ExperienceLevel,
		Size:            in.Size,
	})
	if err != nil {
		return nil, s.internal(err, "search profiles")
	}
	return res, nil
}

// UploadPortfolio stores a portfolio file and returns its public URL.
func (s *ProfileService) UploadPortfolio(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !portfolioTypes[contentType] {
		return "", apperror.NewValidation("file", "file must be a PDF, PNG, JPEG or WebP")
	}
	if path.Ext(filename) == "" {
		return "", apperror.NewValidation("file", "file must have an extension")
	}
	if s.Storage == nil {
		return "", apperror.New(apperror.Internal, msgUploadDisabled, helpers.ErrStorageDisabled)
	}

	url, err := s.Storage.Upload(ctx, portfolioFolder, ownerID, filename, contentType, r)
	if err != nil {
		if errors.Is(err, helpers.ErrStorageDisabled) {
			return "", apperror.New(apperror.Internal, msgUploadDisabled, err)
		}
		return "", s.internal(err, "upload portfolio")
	}
	return url, nil
}

func (s *ProfileService) warn(err error, msg, userID string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}

func (s *ProfileService) internal(err error, op string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("op", op).Error("profile service failure")
	}
	return apperror.NewInternal(errors.Wrap(err, op))
}
