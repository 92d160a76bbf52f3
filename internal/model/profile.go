package model

import "time"

type FounderProfile struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Bio         *string   `db:"bio" json:"bio,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	AvatarURL   *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	LinkedinURL *string   `db:"linkedin_url" json:"linkedin_url,omitempty"`
	TwitterURL  *string   `db:"twitter_url" json:"twitter_url,omitempty"`
	WebsiteURL  *string   `db:"website_url" json:"website_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateFounderProfileRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	AvatarURL   *string `json:"avatar_url"`
	LinkedinURL *string `json:"linkedin_url"`
	TwitterURL  *string `json:"twitter_url"`
	WebsiteURL  *string `json:"website_url"`
}

type Startup struct {
	ID            int64     `db:"id" json:"id"`
	FounderID     int64     `db:"founder_id" json:"founder_id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	Industry      *string   `db:"industry" json:"industry,omitempty"`
	Stage         *string   `db:"stage" json:"stage,omitempty"`
	FundingAmount *int64    `db:"funding_amount" json:"funding_amount,omitempty"`
	Location      *string   `db:"location" json:"location,omitempty"`
	WebsiteURL    *string   `db:"website_url" json:"website_url,omitempty"`
	LogoURL       *string   `db:"logo_url" json:"logo_url,omitempty"`
	FoundedYear   *int      `db:"founded_year" json:"founded_year,omitempty"`
	EmployeeCount *int      `db:"employee_count" json:"employee_count,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateStartupRequest struct {
	FounderID     int64   `json:"founder_id" binding:"required"`
	Name          string  `json:"name" binding:"required,max=200"`
	Description   *string `json:"description"`
	Industry      *string `json:"industry"`
	Stage         *string `json:"stage"`
	FundingAmount *int64  `json:"funding_amount"`
	Location      *string `json:"location"`
	WebsiteURL    *string `json:"website_url"`
	LogoURL       *string `json:"logo_url"`
	FoundedYear   *int    `json:"founded_year"`
	EmployeeCount *int    `json:"employee_count"`
}
