package email

import (
	"context"
	"time"
)

type Service interface {
	SendWelcome(ctx context.Context, to string, username string) error
	SendBookingConfirmation(ctx context.Context, to string, offeringTitle string, scheduledAt time.Time) error
	SendBookingCancellation(ctx context.Context, to string, offeringTitle string, scheduledAt time.Time) error
}
