package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/founderhub/founder-api/internal/model"
)

// Sentinel errors returned by repositories. Services translate these into
// the API error taxonomy.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("record already exists")
	ErrSlotUnavailable = errors.New("slot is no longer available")
	ErrSlotBooked      = errors.New("slot is already booked")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

type ProfileRepository interface {
	CreateFounderProfile(ctx context.Context, profile *model.FounderProfile) error
	GetFounderProfileByUserID(ctx context.Context, userID int64) (*model.FounderProfile, error)
	FounderProfileExists(ctx context.Context, id int64) (bool, error)
	HasFounderProfile(ctx context.Context, userID int64) (bool, error)
	CreateStartup(ctx context.Context, startup *model.Startup) error
	HasStartup(ctx context.Context, founderID int64) (bool, error)
}

type BookingRepository interface {
	CreateOfficeHours(ctx context.Context, oh *model.OfficeHours) error
	GetOfficeHours(ctx context.Context, id int64) (*model.OfficeHours, error)

	CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error
	GetSlot(ctx context.Context, id int64) (*model.AvailabilitySlot, error)
	HasOverlappingSlot(ctx context.Context, officeHoursID int64, start, end time.Time) (bool, error)
	ListSlots(ctx context.Context, officeHoursID int64, onlyAvailable bool) ([]*model.AvailabilitySlot, error)

	// Book inserts the booking, marks its slot unavailable and writes the
	// outbox event in one transaction. The slot row is locked for the
	// duration, so concurrent attempts against the same slot serialize;
	// the loser gets ErrSlotUnavailable or ErrSlotBooked.
	Book(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error

	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error
	ListBookings(ctx context.Context, filters *model.BookingFilters, limit, offset int) ([]*model.BookingSummary, int64, error)
}

type ContentRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	PostExists(ctx context.Context, id int64) (bool, error)
	IncrementViewCount(ctx context.Context, postID int64) error
	ListPosts(ctx context.Context, filters *model.PostFilters, limit, offset int) ([]*model.Post, int64, error)

	CreateComment(ctx context.Context, comment *model.Comment, event *model.OutboxEvent) error
	CommentExistsInPost(ctx context.Context, commentID, postID int64) (bool, error)
	ListComments(ctx context.Context, postID int64) ([]*model.Comment, error)
}

type PitchRepository interface {
	CreatePitchDeck(ctx context.Context, deck *model.PitchDeck) error
	GetPitchDeck(ctx context.Context, id int64) (*model.PitchDeck, error)
	UpdateFileURL(ctx context.Context, id int64, fileURL string) error
	IncrementDeckViewCount(ctx context.Context, id int64) error
	ListPitchDecks(ctx context.Context, filters *model.PitchDeckFilters, limit, offset int) ([]*model.PitchDeckSummary, int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
