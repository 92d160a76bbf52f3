package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type OfficeHours struct {
	ID              int64     `db:"id" json:"id"`
	ExpertID        int64     `db:"expert_id" json:"expert_id"`
	Title           string    `db:"title" json:"title"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	Timezone        string    `db:"timezone" json:"timezone"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// AvailabilitySlot is one concrete bookable interval [StartTime, EndTime)
// under an office hours offering. The end instant is exclusive, so
// back-to-back slots do not overlap.
type AvailabilitySlot struct {
	ID            int64     `db:"id" json:"id"`
	OfficeHoursID int64     `db:"office_hours_id" json:"office_hours_id"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	EndTime       time.Time `db:"end_time" json:"end_time"`
	IsAvailable   bool      `db:"is_available" json:"is_available"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type Booking struct {
	ID            int64         `db:"id" json:"id"`
	OfficeHoursID int64         `db:"office_hours_id" json:"office_hours_id"`
	SlotID        int64         `db:"slot_id" json:"slot_id"`
	FounderID     int64         `db:"founder_id" json:"founder_id"`
	ExpertID      int64         `db:"expert_id" json:"expert_id"`
	Status        BookingStatus `db:"status" json:"status"`
	MeetingURL    *string       `db:"meeting_url" json:"meeting_url,omitempty"`
	Notes         *string       `db:"notes" json:"notes,omitempty"`
	CancelReason  *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
	ScheduledAt   time.Time     `db:"scheduled_at" json:"scheduled_at"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// BookingSummary is a booking row joined with its office hours offering,
// as returned by list queries.
type BookingSummary struct {
	ID               int64         `db:"id" json:"id"`
	OfficeHoursID    int64         `db:"office_hours_id" json:"office_hours_id"`
	FounderID        int64         `db:"founder_id" json:"founder_id"`
	ExpertID         int64         `db:"expert_id" json:"expert_id"`
	Status           BookingStatus `db:"status" json:"status"`
	MeetingURL       *string       `db:"meeting_url" json:"meeting_url,omitempty"`
	Notes            *string       `db:"notes" json:"notes,omitempty"`
	ScheduledAt      time.Time     `db:"scheduled_at" json:"scheduled_at"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	OfficeHoursTitle string        `db:"office_hours_title" json:"office_hours_title"`
	DurationMinutes  int           `db:"duration_minutes" json:"duration_minutes"`
}

type CreateOfficeHoursRequest struct {
	ExpertID        int64   `json:"expert_id" binding:"required"`
	Title           string  `json:"title" binding:"required,max=200"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=15,max=180"`
	PriceCents      int64   `json:"price_cents" binding:"omitempty,min=0"`
	Timezone        string  `json:"timezone" binding:"omitempty,timezone"`
}

type AddAvailabilityRequest struct {
	OfficeHoursID int64     `json:"office_hours_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
}

type CreateBookingRequest struct {
	SlotID    int64   `json:"slot_id" binding:"required"`
	FounderID int64   `json:"founder_id" binding:"required"`
	Notes     *string `json:"notes" binding:"omitempty,max=1000"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

// BookingFilters narrows list queries. Zero values mean "no filter".
type BookingFilters struct {
	FounderID int64
	ExpertID  int64
	Status    BookingStatus
}

type ListBookingsResponse struct {
	Bookings []*BookingSummary `json:"bookings"`
	Total    int64             `json:"total"`
}
