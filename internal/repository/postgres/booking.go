package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
)

func (r *bookingRepository) CreateOfficeHours(ctx context.Context, oh *model.OfficeHours) error {
	query := `
		INSERT INTO office_hours (
			expert_id, title, description, duration_minutes, price_cents,
			timezone, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	oh.IsActive = true
	oh.CreatedAt = time.Now()
	oh.UpdatedAt = oh.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		oh.ExpertID,
		oh.Title,
		oh.Description,
		oh.DurationMinutes,
		oh.PriceCents,
		oh.Timezone,
		oh.IsActive,
		oh.CreatedAt,
		oh.UpdatedAt,
	).Scan(&oh.ID)
	if err != nil {
		return fmt.Errorf("failed to create office hours: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetOfficeHours(ctx context.Context, id int64) (*model.OfficeHours, error) {
	query := `
		SELECT id, expert_id, title, description, duration_minutes, price_cents,
			   timezone, is_active, created_at, updated_at
		FROM office_hours
		WHERE id = $1
	`
	var oh model.OfficeHours
	err := r.db.GetContext(ctx, &oh, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get office hours: %w", err)
	}
	return &oh, nil
}

func (r *bookingRepository) CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (office_hours_id, start_time, end_time, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	slot.IsAvailable = true
	slot.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		slot.OfficeHoursID,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
		slot.CreatedAt,
	).Scan(&slot.ID)
	if err != nil {
		return fmt.Errorf("failed to create availability slot: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetSlot(ctx context.Context, id int64) (*model.AvailabilitySlot, error) {
	query := `
		SELECT id, office_hours_id, start_time, end_time, is_available, created_at
		FROM availability_slots
		WHERE id = $1
	`
	var slot model.AvailabilitySlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability slot: %w", err)
	}
	return &slot, nil
}

// HasOverlappingSlot checks the new interval [start, end) against existing
// slots of the same offering. Intervals are half-open: slots sharing only an
// endpoint do not conflict.
func (r *bookingRepository) HasOverlappingSlot(ctx context.Context, officeHoursID int64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_slots
			WHERE office_hours_id = $1
			AND (
				(start_time <= $2 AND end_time > $2)
				OR (start_time < $3 AND end_time >= $3)
				OR (start_time >= $2 AND end_time <= $3)
			)
		)
	`
	var overlaps bool
	err := r.db.GetContext(ctx, &overlaps, query, officeHoursID, start, end)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping slots: %w", err)
	}
	return overlaps, nil
}

func (r *bookingRepository) ListSlots(ctx context.Context, officeHoursID int64, onlyAvailable bool) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, office_hours_id, start_time, end_time, is_available, created_at
		FROM availability_slots
		WHERE office_hours_id = $1
	`
	if onlyAvailable {
		query += " AND is_available = true"
	}
	query += " ORDER BY start_time ASC"

	var slots []*model.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, officeHoursID); err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	return slots, nil
}

// Book runs the availability check, booking insert and slot flag update in
// one transaction, holding a row lock on the slot. Concurrent attempts on
// the same slot serialize here; whichever commits first wins.
func (r *bookingRepository) Book(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var slot model.AvailabilitySlot
		err := tx.GetContext(ctx, &slot, `
			SELECT id, office_hours_id, start_time, end_time, is_available, created_at
			FROM availability_slots
			WHERE id = $1
			FOR UPDATE
		`, booking.SlotID)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock slot: %w", err)
		}

		if !slot.IsAvailable {
			return repository.ErrSlotUnavailable
		}

		var alreadyBooked bool
		err = tx.GetContext(ctx, &alreadyBooked, `
			SELECT EXISTS (
				SELECT 1 FROM bookings WHERE slot_id = $1 AND status != 'cancelled'
			)
		`, booking.SlotID)
		if err != nil {
			return fmt.Errorf("failed to check existing booking: %w", err)
		}
		if alreadyBooked {
			return repository.ErrSlotBooked
		}

		booking.OfficeHoursID = slot.OfficeHoursID
		booking.ScheduledAt = slot.StartTime
		booking.Status = model.BookingStatusPending
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = booking.CreatedAt

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO bookings (
				office_hours_id, slot_id, founder_id, expert_id,
				status, notes, scheduled_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`,
			booking.OfficeHoursID,
			booking.SlotID,
			booking.FounderID,
			booking.ExpertID,
			booking.Status,
			booking.Notes,
			booking.ScheduledAt,
			booking.CreatedAt,
			booking.UpdatedAt,
		).Scan(&booking.ID)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE availability_slots SET is_available = false WHERE id = $1`,
			booking.SlotID)
		if err != nil {
			return fmt.Errorf("failed to mark slot unavailable: %w", err)
		}

		if event != nil {
			if event.Payload == nil {
				payload, err := json.Marshal(booking)
				if err != nil {
					return fmt.Errorf("failed to marshal booking event: %w", err)
				}
				event.Payload = payload
			}
			if err := insertOutboxEventTx(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *bookingRepository) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, office_hours_id, slot_id, founder_id, expert_id, status,
			   meeting_url, notes, cancel_reason, scheduled_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateBookingStatus(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking.UpdatedAt = time.Now()

		result, err := tx.ExecContext(ctx, `
			UPDATE bookings
			SET status = $1, cancel_reason = $2, updated_at = $3
			WHERE id = $4
		`,
			booking.Status,
			booking.CancelReason,
			booking.UpdatedAt,
			booking.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}

		if event != nil {
			if err := insertOutboxEventTx(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListBookings returns the page and the total count computed from the same
// predicate set.
func (r *bookingRepository) ListBookings(ctx context.Context, filters *model.BookingFilters, limit, offset int) ([]*model.BookingSummary, int64, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filters.FounderID != 0 {
		where += fmt.Sprintf(" AND b.founder_id = $%d", argCount)
		args = append(args, filters.FounderID)
		argCount++
	}
	if filters.ExpertID != 0 {
		where += fmt.Sprintf(" AND b.expert_id = $%d", argCount)
		args = append(args, filters.ExpertID)
		argCount++
	}
	if filters.Status != "" {
		where += fmt.Sprintf(" AND b.status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM bookings b " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			b.id, b.office_hours_id, b.founder_id, b.expert_id, b.status,
			b.meeting_url, b.notes, b.scheduled_at, b.created_at,
			oh.title AS office_hours_title, oh.duration_minutes
		FROM bookings b
		JOIN office_hours oh ON b.office_hours_id = oh.id
		%s
		ORDER BY b.scheduled_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argCount, argCount+1)
	args = append(args, limit, offset)

	var bookings []*model.BookingSummary
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}
