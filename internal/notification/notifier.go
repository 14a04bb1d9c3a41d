package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"lexmarket/config"
	"lexmarket/internal/domain"
)

// Notifier is invoked after a booking is committed. It is strictly
// fire-and-forget: a failing notifier must never roll back or fail the
// booking, so callers only log the returned error.
type Notifier interface {
	BookingCreated(ctx context.Context, booking domain.Booking, lawyer domain.LawyerProfile) error
}

func New(cfg config.EmailConfig, logger *zap.Logger) Notifier {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SendGrid is not configured, booking notifications will only be logged")
		return &LogNotifier{logger: logger}
	}
	return NewEmailNotifier(cfg, logger)
}

// EmailNotifier mails the lawyer about a new booking request through
// SendGrid.
type EmailNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *zap.Logger
}

func NewEmailNotifier(cfg config.EmailConfig, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger,
	}
}

func (n *EmailNotifier) BookingCreated(ctx context.Context, booking domain.Booking, lawyer domain.LawyerProfile) error {
	to := mail.NewEmail(lawyer.FirstName+" "+lawyer.LastName, lawyer.Email)
	subject := "New consultation request"

	quote := domain.PriceQuote(lawyer.HourlyRate).Rounded()
	plain := fmt.Sprintf(
		"You have a new %s consultation request on %s at %s.\nTotal price: $%.2f (incl. $%.2f platform fee).\nLog in to confirm or decline.",
		booking.Type, booking.Date, booking.Time, quote.Total, quote.PlatformFee,
	)

	message := mail.NewSingleEmail(n.from, subject, to, plain, "")
	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending booking notification: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sending booking notification: sendgrid returned status %d", resp.StatusCode)
	}

	n.logger.Info("booking notification sent",
		zap.String("bookingID", booking.ID),
		zap.String("lawyerID", lawyer.ID),
	)

	return nil
}

// LogNotifier stands in when no mail provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func (n *LogNotifier) BookingCreated(_ context.Context, booking domain.Booking, lawyer domain.LawyerProfile) error {
	n.logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("lawyerID", lawyer.ID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	return nil
}
