package booking

import (
	"context"
	stderrors "errors"

	"github.com/founderhub/founder-api/internal/email"
	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/clock"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
	"github.com/founderhub/founder-api/pkg/metrics"
)

const (
	MinOfferingDuration     = 15
	MaxOfferingDuration     = 180
	DefaultOfferingDuration = 30
	DefaultTimezone         = "UTC"
)

type Service struct {
	repo     repository.BookingRepository
	userRepo repository.UserRepository
	emailSvc email.Service
	clock    clock.Clock
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(
	repo repository.BookingRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	clk clock.Clock,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		clock:    clk,
		logger:   log,
		metrics:  m,
	}
}

func (s *Service) CreateOfficeHours(ctx context.Context, req *model.CreateOfficeHoursRequest) (*model.OfficeHours, error) {
	if req.Title == "" {
		return nil, errors.InvalidArgument("title is required")
	}
	if req.DurationMinutes != 0 && (req.DurationMinutes < MinOfferingDuration || req.DurationMinutes > MaxOfferingDuration) {
		return nil, errors.InvalidArgument("duration must be between 15 and 180 minutes")
	}

	oh := &model.OfficeHours{
		ExpertID:        req.ExpertID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Timezone:        req.Timezone,
	}
	if oh.DurationMinutes == 0 {
		oh.DurationMinutes = DefaultOfferingDuration
	}
	if oh.Timezone == "" {
		oh.Timezone = DefaultTimezone
	}

	if err := s.repo.CreateOfficeHours(ctx, oh); err != nil {
		return nil, errors.Internal(err)
	}
	return oh, nil
}

func (s *Service) GetOfficeHours(ctx context.Context, id int64) (*model.OfficeHours, error) {
	oh, err := s.repo.GetOfficeHours(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("office hours", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return oh, nil
}

// AddAvailability creates one bookable slot under an offering. The slot
// interval is half-open: [start, end). A new slot is rejected when it
// overlaps any existing slot of the same offering; slots that only share an
// endpoint are allowed.
func (s *Service) AddAvailability(ctx context.Context, req *model.AddAvailabilityRequest) (*model.AvailabilitySlot, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, errors.InvalidArgument("start time must be before end time")
	}
	if req.StartTime.Before(s.clock.Now()) {
		return nil, errors.InvalidArgument("start time must be in the future")
	}

	if _, err := s.repo.GetOfficeHours(ctx, req.OfficeHoursID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("office hours", err)
		}
		return nil, errors.Internal(err)
	}

	overlaps, err := s.repo.HasOverlappingSlot(ctx, req.OfficeHoursID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if overlaps {
		return nil, errors.Conflict("overlapping availability slot already exists")
	}

	slot := &model.AvailabilitySlot{
		OfficeHoursID: req.OfficeHoursID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("availability slot created",
		"slot_id", slot.ID, "office_hours_id", slot.OfficeHoursID)
	return slot, nil
}

func (s *Service) ListSlots(ctx context.Context, officeHoursID int64, onlyAvailable bool) ([]*model.AvailabilitySlot, error) {
	slots, err := s.repo.ListSlots(ctx, officeHoursID, onlyAvailable)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return slots, nil
}

// CreateBooking reserves an available slot for a founder. The availability
// re-check, booking insert and slot flag flip run in one transaction under a
// row lock, so of two concurrent attempts on the same slot exactly one
// succeeds.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	slot, err := s.repo.GetSlot(ctx, req.SlotID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("availability slot", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}

	if !slot.IsAvailable {
		s.metrics.BookingConflicts.Inc()
		return nil, errors.Conflict("slot is no longer available")
	}
	if slot.StartTime.Before(s.clock.Now()) {
		return nil, errors.InvalidArgument("cannot book past slots")
	}

	oh, err := s.repo.GetOfficeHours(ctx, slot.OfficeHoursID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("office hours", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}

	booking := &model.Booking{
		SlotID:    req.SlotID,
		FounderID: req.FounderID,
		ExpertID:  oh.ExpertID,
		Notes:     req.Notes,
	}
	event := &model.OutboxEvent{EventType: model.EventBookingCreated}

	err = s.repo.Book(ctx, booking, event)
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return nil, errors.NotFound("availability slot", err)
	case stderrors.Is(err, repository.ErrSlotUnavailable):
		s.metrics.BookingConflicts.Inc()
		return nil, errors.Conflict("slot is no longer available")
	case stderrors.Is(err, repository.ErrSlotBooked):
		s.metrics.BookingConflicts.Inc()
		return nil, errors.Conflict("slot is already booked")
	case err != nil:
		return nil, errors.Internal(err)
	}

	s.metrics.BookingsCreated.Inc()
	s.logger.Info("booking created",
		"booking_id", booking.ID, "slot_id", booking.SlotID, "founder_id", booking.FounderID)

	s.notifyFounder(ctx, booking, oh.Title, false)
	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("booking", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return booking, nil
}

// CancelBooking marks a booking cancelled. The slot's availability flag is
// deliberately left untouched: a consumed slot stays consumed.
func (s *Service) CancelBooking(ctx context.Context, id int64, reason *string) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.BookingStatusCancelled {
		return nil, errors.Conflict("booking is already cancelled")
	}
	if booking.Status == model.BookingStatusCompleted {
		return nil, errors.Conflict("cannot cancel a completed booking")
	}

	booking.Status = model.BookingStatusCancelled
	booking.CancelReason = reason

	event := &model.OutboxEvent{EventType: model.EventBookingCancelled}
	if err := s.repo.UpdateBookingStatus(ctx, booking, event); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("booking", err)
		}
		return nil, errors.Internal(err)
	}

	s.metrics.BookingsCancelled.Inc()
	s.logger.Info("booking cancelled", "booking_id", booking.ID)

	if oh, err := s.repo.GetOfficeHours(ctx, booking.OfficeHoursID); err == nil {
		s.notifyFounder(ctx, booking, oh.Title, true)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters, page *model.Pagination) (*model.ListBookingsResponse, error) {
	page.Normalize()

	bookings, total, err := s.repo.ListBookings(ctx, filters, page.Limit, page.Offset)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if bookings == nil {
		bookings = []*model.BookingSummary{}
	}
	return &model.ListBookingsResponse{Bookings: bookings, Total: total}, nil
}

// notifyFounder sends a confirmation or cancellation email. Failures are
// logged, never surfaced: the booking mutation has already committed.
func (s *Service) notifyFounder(ctx context.Context, booking *model.Booking, offeringTitle string, cancelled bool) {
	founder, err := s.userRepo.GetByID(ctx, booking.FounderID)
	if err != nil {
		s.logger.Error(err, "failed to resolve founder for notification",
			"booking_id", booking.ID, "founder_id", booking.FounderID)
		return
	}

	if cancelled {
		err = s.emailSvc.SendBookingCancellation(ctx, founder.Email, offeringTitle, booking.ScheduledAt)
	} else {
		err = s.emailSvc.SendBookingConfirmation(ctx, founder.Email, offeringTitle, booking.ScheduledAt)
	}
	if err != nil {
		s.logger.Error(err, "failed to send booking notification", "booking_id", booking.ID)
	}
}
