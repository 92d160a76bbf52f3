package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
)

func (r *profileRepository) CreateFounderProfile(ctx context.Context, profile *model.FounderProfile) error {
	query := `
		INSERT INTO founder_profiles (
			user_id, first_name, last_name, bio, location,
			avatar_url, linkedin_url, twitter_url, website_url,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Bio,
		profile.Location,
		profile.AvatarURL,
		profile.LinkedinURL,
		profile.TwitterURL,
		profile.WebsiteURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to create founder profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetFounderProfileByUserID(ctx context.Context, userID int64) (*model.FounderProfile, error) {
	query := `
		SELECT id, user_id, first_name, last_name, bio, location,
			   avatar_url, linkedin_url, twitter_url, website_url,
			   created_at, updated_at
		FROM founder_profiles
		WHERE user_id = $1
	`
	var profile model.FounderProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get founder profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) FounderProfileExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM founder_profiles WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check founder profile: %w", err)
	}
	return exists, nil
}

func (r *profileRepository) HasFounderProfile(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM founder_profiles WHERE user_id = $1)`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check founder profile: %w", err)
	}
	return exists, nil
}

func (r *profileRepository) CreateStartup(ctx context.Context, startup *model.Startup) error {
	query := `
		INSERT INTO startups (
			founder_id, name, description, industry, stage, funding_amount,
			location, website_url, logo_url, founded_year, employee_count,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	startup.CreatedAt = time.Now()
	startup.UpdatedAt = startup.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		startup.FounderID,
		startup.Name,
		startup.Description,
		startup.Industry,
		startup.Stage,
		startup.FundingAmount,
		startup.Location,
		startup.WebsiteURL,
		startup.LogoURL,
		startup.FoundedYear,
		startup.EmployeeCount,
		startup.CreatedAt,
		startup.UpdatedAt,
	).Scan(&startup.ID)
	if err != nil {
		return fmt.Errorf("failed to create startup: %w", err)
	}
	return nil
}

func (r *profileRepository) HasStartup(ctx context.Context, founderID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM startups WHERE founder_id = $1)`, founderID)
	if err != nil {
		return false, fmt.Errorf("failed to check startup: %w", err)
	}
	return exists, nil
}
