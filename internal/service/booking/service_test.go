package booking

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/clock"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
	"github.com/founderhub/founder-api/pkg/metrics"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	officeHours map[int64]*model.OfficeHours
	slots       map[int64]*model.AvailabilitySlot
	bookings    map[int64]*model.Booking
	nextID      int64
	events      []*model.OutboxEvent
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		officeHours: make(map[int64]*model.OfficeHours),
		slots:       make(map[int64]*model.AvailabilitySlot),
		bookings:    make(map[int64]*model.Booking),
		nextID:      1,
	}
}

func (r *fakeBookingRepo) id() int64 {
	id := r.nextID
	r.nextID++
	return id
}

func (r *fakeBookingRepo) CreateOfficeHours(_ context.Context, oh *model.OfficeHours) error {
	oh.ID = r.id()
	r.officeHours[oh.ID] = oh
	return nil
}

func (r *fakeBookingRepo) GetOfficeHours(_ context.Context, id int64) (*model.OfficeHours, error) {
	oh, ok := r.officeHours[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return oh, nil
}

func (r *fakeBookingRepo) CreateSlot(_ context.Context, slot *model.AvailabilitySlot) error {
	slot.ID = r.id()
	slot.IsAvailable = true
	r.slots[slot.ID] = slot
	return nil
}

func (r *fakeBookingRepo) GetSlot(_ context.Context, id int64) (*model.AvailabilitySlot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return slot, nil
}

func (r *fakeBookingRepo) HasOverlappingSlot(_ context.Context, officeHoursID int64, start, end time.Time) (bool, error) {
	for _, s := range r.slots {
		if s.OfficeHoursID != officeHoursID {
			continue
		}
		// Half-open interval check, endpoints may touch.
		if start.Before(s.EndTime) && s.StartTime.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ListSlots(_ context.Context, officeHoursID int64, onlyAvailable bool) ([]*model.AvailabilitySlot, error) {
	var out []*model.AvailabilitySlot
	for _, s := range r.slots {
		if s.OfficeHoursID == officeHoursID && (!onlyAvailable || s.IsAvailable) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Book(_ context.Context, booking *model.Booking, event *model.OutboxEvent) error {
	slot, ok := r.slots[booking.SlotID]
	if !ok {
		return repository.ErrNotFound
	}
	if !slot.IsAvailable {
		return repository.ErrSlotUnavailable
	}
	for _, b := range r.bookings {
		if b.SlotID == booking.SlotID && b.Status != model.BookingStatusCancelled {
			return repository.ErrSlotBooked
		}
	}

	booking.ID = r.id()
	booking.OfficeHoursID = slot.OfficeHoursID
	booking.ScheduledAt = slot.StartTime
	booking.Status = model.BookingStatusPending
	r.bookings[booking.ID] = booking
	slot.IsAvailable = false

	if event != nil {
		r.events = append(r.events, event)
	}
	return nil
}

func (r *fakeBookingRepo) GetBooking(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateBookingStatus(_ context.Context, booking *model.Booking, event *model.OutboxEvent) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	r.bookings[booking.ID] = booking
	if event != nil {
		r.events = append(r.events, event)
	}
	return nil
}

func (r *fakeBookingRepo) ListBookings(_ context.Context, filters *model.BookingFilters, limit, offset int) ([]*model.BookingSummary, int64, error) {
	var out []*model.BookingSummary
	for _, b := range r.bookings {
		if filters.FounderID != 0 && b.FounderID != filters.FounderID {
			continue
		}
		if filters.ExpertID != 0 && b.ExpertID != filters.ExpertID {
			continue
		}
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}
		out = append(out, &model.BookingSummary{
			ID:          b.ID,
			FounderID:   b.FounderID,
			ExpertID:    b.ExpertID,
			Status:      b.Status,
			ScheduledAt: b.ScheduledAt,
		})
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

type fakeUserRepo struct {
	users map[int64]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error { return nil }

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	return false, nil
}

type fakeEmailService struct {
	confirmations int
	cancellations int
}

func (s *fakeEmailService) SendWelcome(_ context.Context, _ string, _ string) error { return nil }

func (s *fakeEmailService) SendBookingConfirmation(_ context.Context, _ string, _ string, _ time.Time) error {
	s.confirmations++
	return nil
}

func (s *fakeEmailService) SendBookingCancellation(_ context.Context, _ string, _ string, _ time.Time) error {
	s.cancellations++
	return nil
}

func newTestMetrics() *metrics.Metrics {
	opts := func(name string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Name: name}
	}
	return &metrics.Metrics{
		BookingsCreated:   prometheus.NewCounter(opts("test_bookings_created")),
		BookingConflicts:  prometheus.NewCounter(opts("test_booking_conflicts")),
		BookingsCancelled: prometheus.NewCounter(opts("test_bookings_cancelled")),
	}
}

func newTestService(t *testing.T) (*Service, *fakeBookingRepo, *fakeEmailService) {
	t.Helper()

	repo := newFakeBookingRepo()
	emailSvc := &fakeEmailService{}
	users := &fakeUserRepo{users: map[int64]*model.User{
		10: {ID: 10, Email: "founder@example.com", Username: "founder"},
	}}

	svc := NewService(repo, users, emailSvc, clock.Fixed(testNow), logger.NewLogger(nil), newTestMetrics())
	return svc, repo, emailSvc
}

func seedOffering(t *testing.T, svc *Service) *model.OfficeHours {
	t.Helper()

	oh, err := svc.CreateOfficeHours(context.Background(), &model.CreateOfficeHoursRequest{
		ExpertID: 1,
		Title:    "Fundraising 101",
	})
	require.NoError(t, err)
	return oh
}

func TestCreateOfficeHoursDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	oh := seedOffering(t, svc)
	assert.Equal(t, DefaultOfferingDuration, oh.DurationMinutes)
	assert.Equal(t, DefaultTimezone, oh.Timezone)
}

func TestCreateOfficeHoursValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateOfficeHours(context.Background(), &model.CreateOfficeHoursRequest{ExpertID: 1})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))

	_, err = svc.CreateOfficeHours(context.Background(), &model.CreateOfficeHoursRequest{
		ExpertID:        1,
		Title:           "Too short",
		DurationMinutes: 10,
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
}

func TestAddAvailabilityRejectsBadIntervals(t *testing.T) {
	svc, _, _ := newTestService(t)
	oh := seedOffering(t, svc)

	start := testNow.Add(24 * time.Hour)

	// start == end
	_, err := svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     start,
		EndTime:       start,
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))

	// start > end
	_, err = svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     start.Add(time.Hour),
		EndTime:       start,
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))

	// past start
	_, err = svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     testNow.Add(-time.Hour),
		EndTime:       testNow.Add(time.Hour),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
}

func TestAddAvailabilityOverlap(t *testing.T) {
	svc, _, _ := newTestService(t)
	oh := seedOffering(t, svc)

	start := testNow.Add(24 * time.Hour)
	end := start.Add(30 * time.Minute)

	_, err := svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     start,
		EndTime:       end,
	})
	require.NoError(t, err)

	// Overlapping interval is rejected.
	_, err = svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     start.Add(15 * time.Minute),
		EndTime:       end.Add(15 * time.Minute),
	})
	assert.True(t, errors.IsCode(err, errors.ErrConflict))

	// Back-to-back slot sharing an endpoint is fine.
	_, err = svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     end,
		EndTime:       end.Add(30 * time.Minute),
	})
	assert.NoError(t, err)
}

func TestAddAvailabilityUnknownOffering(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: 999,
		StartTime:     testNow.Add(time.Hour),
		EndTime:       testNow.Add(2 * time.Hour),
	})
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestCreateBookingConsumesSlot(t *testing.T) {
	svc, repo, emailSvc := newTestService(t)
	oh := seedOffering(t, svc)

	slot, err := svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     testNow.Add(24 * time.Hour),
		EndTime:       testNow.Add(24*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)

	booking, err := svc.CreateBooking(context.Background(), &model.CreateBookingRequest{
		SlotID:    slot.ID,
		FounderID: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, oh.ExpertID, booking.ExpertID)
	assert.Equal(t, slot.StartTime, booking.ScheduledAt)
	assert.False(t, repo.slots[slot.ID].IsAvailable)
	assert.Equal(t, 1, emailSvc.confirmations)
	require.Len(t, repo.events, 1)
	assert.Equal(t, model.EventBookingCreated, repo.events[0].EventType)

	// Second attempt on the same slot conflicts.
	_, err = svc.CreateBooking(context.Background(), &model.CreateBookingRequest{
		SlotID:    slot.ID,
		FounderID: 10,
	})
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestCreateBookingPastSlot(t *testing.T) {
	svc, repo, _ := newTestService(t)
	oh := seedOffering(t, svc)

	slot := &model.AvailabilitySlot{
		OfficeHoursID: oh.ID,
		StartTime:     testNow.Add(-2 * time.Hour),
		EndTime:       testNow.Add(-time.Hour),
	}
	require.NoError(t, repo.CreateSlot(context.Background(), slot))

	_, err := svc.CreateBooking(context.Background(), &model.CreateBookingRequest{
		SlotID:    slot.ID,
		FounderID: 10,
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
}

func TestCreateBookingUnknownSlot(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), &model.CreateBookingRequest{
		SlotID:    404,
		FounderID: 10,
	})
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestCancelBookingKeepsSlotConsumed(t *testing.T) {
	svc, repo, emailSvc := newTestService(t)
	oh := seedOffering(t, svc)

	slot, err := svc.AddAvailability(context.Background(), &model.AddAvailabilityRequest{
		OfficeHoursID: oh.ID,
		StartTime:     testNow.Add(24 * time.Hour),
		EndTime:       testNow.Add(24*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)

	booking, err := svc.CreateBooking(context.Background(), &model.CreateBookingRequest{
		SlotID:    slot.ID,
		FounderID: 10,
	})
	require.NoError(t, err)

	reason := "schedule conflict"
	cancelled, err := svc.CancelBooking(context.Background(), booking.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, &reason, cancelled.CancelReason)
	assert.Equal(t, 1, emailSvc.cancellations)

	// The slot is not released by cancellation.
	assert.False(t, repo.slots[slot.ID].IsAvailable)

	// Cancelling twice conflicts.
	_, err = svc.CancelBooking(context.Background(), booking.ID, nil)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestCancelCompletedBooking(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.bookings[7] = &model.Booking{ID: 7, Status: model.BookingStatusCompleted}

	_, err := svc.CancelBooking(context.Background(), 7, nil)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestListBookingsFiltersAndTotal(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.bookings[1] = &model.Booking{ID: 1, FounderID: 10, ExpertID: 1, Status: model.BookingStatusPending}
	repo.bookings[2] = &model.Booking{ID: 2, FounderID: 10, ExpertID: 2, Status: model.BookingStatusCancelled}
	repo.bookings[3] = &model.Booking{ID: 3, FounderID: 11, ExpertID: 1, Status: model.BookingStatusPending}

	resp, err := svc.ListBookings(context.Background(), &model.BookingFilters{FounderID: 10}, &model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.ListBookings(context.Background(), &model.BookingFilters{
		FounderID: 10,
		Status:    model.BookingStatusCancelled,
	}, &model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	// Empty result is a non-nil slice.
	resp, err = svc.ListBookings(context.Background(), &model.BookingFilters{FounderID: 99}, &model.Pagination{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}
