package application

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/config"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-talent-marketplace/pkg/apperror"
	"github.com/oksasatya/go-talent-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/go-talent-marketplace/pkg/mailer/templates"
	"github.com/oksasatya/go-talent-marketplace/pkg/validation"
)

const (
	msgClientNotFound = "Client not found"
	msgTalentNotFound = "Talent not found"
)

type HireService struct {
	Repo              repo.HireRequestRepository
	Users             repo.UserRepository
	Validator         *validation.Validator
	Publisher         Publisher
	Config            *config.Config
	EnforceReferences bool
	Logger            *logrus.Logger
}

func NewHireService(hires repo.HireRequestRepository, users repo.UserRepository, v *validation.Validator, logger *logrus.Logger) *HireService {
	return &HireService{
		Repo:              hires,
		Users:             users,
		Validator:         v,
		EnforceReferences: true,
		Logger:            logger,
	}
}

// CreateHireInput is the authenticated shape; the client is the caller.
type CreateHireInput struct {
	TalentID       string   `json:"talentId" validate:"required"`
	ProjectDetails string   `json:"projectDetails" validate:"required_without=Details,max=5000"`
	Details        string   `json:"details" validate:"omitempty,min=10,max=5000"`
	Budget         *float64 `json:"budget" validate:"omitempty,gte=0"`
}

// SubmitHireInput is the unauthenticated shape that names both parties.
type SubmitHireInput struct {
	ClientID string `json:"clientId" validate:"required"`
	TalentID string `json:"talentId" validate:"required"`
	Details  string `json:"details" validate:"required,min=10,max=5000"`
}

// Create stores a hire request from the authenticated client clientID.
func (s *HireService) Create(ctx context.Context, clientID string, in CreateHireInput) (*entity.HireRequest, error) {
	in.TalentID = strings.TrimSpace(in.TalentID)
	if fe := s.Validator.Struct(in); fe != nil {
		return nil, apperror.NewValidation(fe.Field, fe.Message)
	}
	h := &entity.HireRequest{
		ClientID:       clientID,
		TalentID:       in.TalentID,
		Details:        in.Details,
		ProjectDetails: in.ProjectDetails,
		Budget:         in.Budget,
	}
	return s.store(ctx, h)
}

// Submit stores a hire request whose parties come from the payload.
func (s *HireService) Submit(ctx context.Context, in SubmitHireInput) (*entity.HireRequest, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.TalentID = strings.TrimSpace(in.TalentID)
	if fe := s.Validator.Struct(in); fe != nil {
		return nil, apperror.NewValidation(fe.Field, fe.Message)
	}
	h := &entity.HireRequest{
		ClientID: in.ClientID,
		TalentID: in.TalentID,
		Details:  in.Details,
	}
	return s.store(ctx, h)
}

// ListForClient returns the client's requests in storage order.
func (s *HireService) ListForClient(ctx context.Context, clientID string) ([]entity.HireRequest, error) {
	list, err := s.Repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, s.internal(err, "list hire requests")
	}
	if list == nil {
		list = []entity.HireRequest{}
	}
	return list, nil
}

func (s *HireService) store(ctx context.Context, h *entity.HireRequest) (*entity.HireRequest, error) {
	var client, talent *entity.User
	if s.EnforceReferences {
		var err error
		if client, err = s.lookup(ctx, h.ClientID, msgClientNotFound); err != nil {
			return nil, err
		}
		if talent, err = s.lookup(ctx, h.TalentID, msgTalentNotFound); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Create(ctx, h); err != nil {
		return nil, s.internal(err, "create hire request")
	}

	s.notifyTalent(ctx, h, client, talent)
	return h, nil
}

func (s *HireService) lookup(ctx context.Context, id, notFound string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewNotFound(notFound)
		}
		return nil, s.internal(err, "lookup user")
	}
	return u, nil
}

// notifyTalent tells the talent about the request when both parties are known users.
func (s *HireService) notifyTalent(ctx context.Context, h *entity.HireRequest, client, talent *entity.User) {
	if s.Publisher == nil {
		return
	}
	if talent == nil {
		u, err := s.Users.GetByID(ctx, h.TalentID)
		if err != nil {
			return
		}
		talent = u
	}
	if client == nil {
		if u, err := s.Users.GetByID(ctx, h.ClientID); err == nil {
			client = u
		}
	}

	opts := []mailtpl.Option{mailtpl.WithBudget(h.Budget), mailtpl.WithTime(h.CreatedAt)}
	if client != nil {
		opts = append(opts, mailtpl.WithClient(client.Name, client.Email))
	}
	notify(ctx, s.Publisher, s.Logger, mailer.EmailJob{
		To:       talent.Email,
		Template: mailtpl.HireRequest,
		Data:     mailtpl.NewHireRequestData(s.Config, talent.Name, talent.Email, h.Details, h.ProjectDetails, opts...),
	})
}

func (s *HireService) internal(err error, op string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("op", op).Error("hire service failure")
	}
	return apperror.NewInternal(errors.Wrap(err, op))
}
