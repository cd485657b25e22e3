// Package auth signs administrators up, checks their credentials and issues
// the bearer tokens required by mutating endpoints.
package auth

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is the administrator payload accepted by sign-up and update.
type Account struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
	Status   string `mapstructure:"status"`
}

// Service is the administrator authentication service
type Service struct {
	admins *repository.Repository[domain.Administrator]
	hasher Hasher
	tokens *TokenIssuer
}

func NewService(admins *repository.Repository[domain.Administrator], hasher Hasher, tokens *TokenIssuer) *Service {
	return &Service{admins: admins, hasher: hasher, tokens: tokens}
}

// Hasher returns the password hasher shared with other account types
func (s *Service) Hasher() Hasher {
	return s.hasher
}

// SignUp hashes the password and registers a new administrator unless the
// email is already taken.
func (s *Service) SignUp(ctx context.Context, in Account) (*domain.Administrator, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Administrator{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		Status:   in.Status,
	}
	if err := s.admins.CreateUnique(ctx, admin, "email", in.Email); err != nil {
		return nil, err
	}
	zap.L().Info("administrator signed up", zap.Int64("id", admin.ID), zap.String("email", admin.Email))
	return admin, nil
}

// Update replaces an administrator's fields, re-hashing the password.
func (s *Service) Update(ctx context.Context, id int64, in Account) (*domain.Administrator, error) {
	if _, err := s.admins.FindByID(ctx, id); err != nil {
		return nil, err
	}
	taken, err := s.admins.Taken(ctx, "email", in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrConflict
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return s.admins.Update(ctx, id, &domain.Administrator{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		Status:   in.Status,
	})
}

// Login checks the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Administrator, error) {
	admin, err := s.admins.FindOneBy(ctx, "email", email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := s.hasher.Compare(admin.Password, password); err != nil {
		zap.L().Warn("administrator login rejected", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.Email, admin.Role)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
