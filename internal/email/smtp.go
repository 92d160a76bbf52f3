package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/founderhub/founder-api/internal/config"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, username string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to FounderHub. Your account is ready.\n", username)
	return s.send(ctx, to, "Welcome to FounderHub", body)
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to string, offeringTitle string, scheduledAt time.Time) error {
	body := fmt.Sprintf(
		"Your session %q is booked for %s.\n",
		offeringTitle, scheduledAt.Format(time.RFC1123))
	return s.send(ctx, to, "Booking confirmed", body)
}

func (s *smtpService) SendBookingCancellation(ctx context.Context, to string, offeringTitle string, scheduledAt time.Time) error {
	body := fmt.Sprintf(
		"Your session %q scheduled for %s has been cancelled.\n",
		offeringTitle, scheduledAt.Format(time.RFC1123))
	return s.send(ctx, to, "Booking cancelled", body)
}
