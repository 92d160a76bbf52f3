package profile

import (
	"context"
	stderrors "errors"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
)

type Service struct {
	repo   repository.ProfileRepository
	logger *logger.Logger
}

func NewService(repo repository.ProfileRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) CreateFounderProfile(ctx context.Context, req *model.CreateFounderProfileRequest) (*model.FounderProfile, error) {
	exists, err := s.repo.HasFounderProfile(ctx, req.UserID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if exists {
		return nil, errors.Conflict("founder profile already exists for this user")
	}

	profile := &model.FounderProfile{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Location:    req.Location,
		AvatarURL:   req.AvatarURL,
		LinkedinURL: req.LinkedinURL,
		TwitterURL:  req.TwitterURL,
		WebsiteURL:  req.WebsiteURL,
	}
	if err := s.repo.CreateFounderProfile(ctx, profile); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("founder profile created", "profile_id", profile.ID, "user_id", profile.UserID)
	return profile, nil
}

func (s *Service) GetFounderProfile(ctx context.Context, userID int64) (*model.FounderProfile, error) {
	profile, err := s.repo.GetFounderProfileByUserID(ctx, userID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("founder profile", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return profile, nil
}

func (s *Service) CreateStartup(ctx context.Context, req *model.CreateStartupRequest) (*model.Startup, error) {
	founderExists, err := s.repo.FounderProfileExists(ctx, req.FounderID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !founderExists {
		return nil, errors.NotFound("founder profile", nil)
	}

	hasStartup, err := s.repo.HasStartup(ctx, req.FounderID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if hasStartup {
		return nil, errors.Conflict("startup already exists for this founder")
	}

	startup := &model.Startup{
		FounderID:     req.FounderID,
		Name:          req.Name,
		Description:   req.Description,
		Industry:      req.Industry,
		Stage:         req.Stage,
		FundingAmount: req.FundingAmount,
		Location:      req.Location,
		WebsiteURL:    req.WebsiteURL,
		LogoURL:       req.LogoURL,
		FoundedYear:   req.FoundedYear,
		EmployeeCount: req.EmployeeCount,
	}
	if err := s.repo.CreateStartup(ctx, startup); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("startup created", "startup_id", startup.ID, "founder_id", startup.FounderID)
	return startup, nil
}
