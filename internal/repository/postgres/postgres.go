package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/founderhub/founder-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type profileRepository struct {
	BaseRepository
}

type bookingRepository struct {
	BaseRepository
}

type contentRepository struct {
	BaseRepository
}

type pitchRepository struct {
	BaseRepository
}

type outboxRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{NewBaseRepository(db)}
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{NewBaseRepository(db)}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{NewBaseRepository(db)}
}

func NewContentRepository(db *sqlx.DB) repository.ContentRepository {
	return &contentRepository{NewBaseRepository(db)}
}

func NewPitchRepository(db *sqlx.DB) repository.PitchRepository {
	return &pitchRepository{NewBaseRepository(db)}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{NewBaseRepository(db)}
}
