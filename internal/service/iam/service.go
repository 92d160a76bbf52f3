package iam

import (
	"context"
	stderrors "errors"

	"github.com/founderhub/founder-api/internal/email"
	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/auth"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
	"github.com/founderhub/founder-api/pkg/security"
)

const bcryptCost = 12

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(
	userRepo repository.UserRepository,
	jwtSvc auth.JWTService,
	emailSvc email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   security.NewBcryptHasher(bcryptCost),
		emailSvc: emailSvc,
		logger:   log,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if exists {
		return nil, errors.Conflict("user with this email or username already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.InvalidArgument("password must be at least 8 characters")
	}

	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.UserRole(req.Role),
	}
	if user.Role == "" {
		user.Role = model.UserRoleMember
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.Username); err != nil {
		s.logger.Error(err, "failed to send welcome email", "user_id", user.ID)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !user.IsActive {
		return nil, errors.Unauthorized("invalid credentials")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, errors.Unauthorized("invalid credentials")
	}

	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}
