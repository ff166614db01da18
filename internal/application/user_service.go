package application

import (
	"context"
	"strings"
	"time"

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
	msgEmailTaken   = "Email already registered"
	msgUserNotFound = "User not found"
)

type UserService struct {
	Repo      repo.UserRepository
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Validator *validation.Validator
	Publisher Publisher
	Config    *config.Config
	Logger    *logrus.Logger
}

func NewUserService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, v *validation.Validator, pub Publisher, cfg *config.Config, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:      users,
		Hasher:    hasher,
		Tokens:    tokens,
		Validator: v,
		Publisher: pub,
		Config:    cfg,
		Logger:    logger,
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued token; only Token is written to clients.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if fe := s.Validator.Struct(in); fe != nil {
		return nil, apperror.NewValidation(fe.Field, fe.Message)
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.NewConflict(msgEmailTaken, nil)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, s.internal(err, "lookup user by email")
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, s.internal(err, "hash password")
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// a concurrent registration can win between the lookup and the insert
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.NewConflict(msgEmailTaken, err)
		}
		return nil, s.internal(err, "create user")
	}

	notify(ctx, s.Publisher, s.Logger, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Config, u.Name, u.Email, mailtpl.WithTime(u.CreatedAt)),
	})
	return u, nil
}

// Login checks credentials and issues an identity token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if fe := s.Validator.Struct(in); fe != nil {
		return nil, apperror.NewValidation(fe.Field, fe.Message)
	}

	u, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewNotFound(msgUserNotFound)
		}
		return nil, s.internal(err, "lookup user by email")
	}
	if !s.Hasher.Verify(in.Password, u.Password) {
		return nil, apperror.NewInvalidCredentials()
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, s.internal(err, "issue token")
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NewNotFound(msgUserNotFound)
		}
		return nil, s.internal(err, "get user")
	}
	return u, nil
}

func (s *UserService) internal(err error, op string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("op", op).Error("user service failure")
	}
	return apperror.NewInternal(errors.Wrap(err, op))
}
