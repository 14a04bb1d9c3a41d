package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"lexmarket/config"
	"lexmarket/internal/domain"
	"lexmarket/internal/notification"
	"lexmarket/internal/repository"
)

type BookingServiceImpl struct {
	repo       repository.BookingRepository
	lawyerRepo repository.LawyerRepository
	notifier   notification.Notifier
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lawyerRepo repository.LawyerRepository,
	notifier notification.Notifier,
	cfg config.BookingConfig,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		repo:       repo,
		lawyerRepo: lawyerRepo,
		notifier:   notifier,
		timeout:    cfg.PersistTimeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Create runs the booking request pipeline: validate, look up the
// lawyer, derive the price server-side, persist PENDING, notify. The
// caller's identity comes from the authenticated session; the price
// always comes from the lawyer's current hourly rate, never from the
// request.
func (s *BookingServiceImpl) Create(ctx context.Context, clientID string, dto domain.CreateBookingDTO) (*domain.Booking, error) {
	if err := dto.Validate(s.now()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lawyer, err := s.lawyerRepo.GetByID(ctx, dto.LawyerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("lawyer lookup failed while creating booking",
			zap.String("lawyerID", dto.LawyerID), zap.Error(err))
		return nil, persistenceError(ctx, err)
	}

	if !lawyer.IsVerified {
		return nil, domain.ErrNotFound
	}

	quote := domain.PriceQuote(lawyer.HourlyRate)

	booking, err := s.repo.Create(ctx, clientID, dto, quote.Total)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		s.logger.Error("booking insert failed",
			zap.String("clientID", clientID), zap.String("lawyerID", dto.LawyerID), zap.Error(err))
		return nil, persistenceError(ctx, err)
	}

	// Notification is fire-and-forget: its failure must never undo or
	// fail an already committed booking.
	go func(b domain.Booking, l domain.LawyerProfile) {
		nctx, ncancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer ncancel()

		if err := s.notifier.BookingCreated(nctx, b, l); err != nil {
			s.logger.Warn("booking notification failed",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}(*booking, *lawyer)

	return booking, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("fetching booking failed", zap.String("id", id), zap.Error(err))
		return nil, persistenceError(ctx, err)
	}
	return booking, nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing bookings failed", zap.Error(err))
		return nil, 0, persistenceError(ctx, err)
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("counting bookings failed", zap.Error(err))
		return bookings, len(bookings), nil
	}

	return bookings, count, nil
}

// UpdateStatus applies a lifecycle transition after checking it is
// legal from the booking's current state.
func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, id string, next domain.BookingStatus) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return persistenceError(ctx, err)
	}

	if !booking.Status.CanTransitionTo(next) {
		return domain.NewInvalidRequest("status",
			"cannot change from "+string(booking.Status)+" to "+string(next))
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		s.logger.Error("updating booking status failed",
			zap.String("id", id), zap.String("status", string(next)), zap.Error(err))
		return persistenceError(ctx, err)
	}

	return nil
}

// FreeSlots returns the fixed slot set minus the lawyer's live
// bookings for the given date.
func (s *BookingServiceImpl) FreeSlots(ctx context.Context, lawyerID string, date string) ([]string, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, domain.NewInvalidRequest("date", "must be a valid date in YYYY-MM-DD format")
	}

	if _, err := s.lawyerRepo.GetByID(ctx, lawyerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, persistenceError(ctx, err)
	}

	booked, err := s.repo.BookedSlots(ctx, lawyerID, date)
	if err != nil {
		s.logger.Error("fetching booked slots failed",
			zap.String("lawyerID", lawyerID), zap.Error(err))
		return nil, persistenceError(ctx, err)
	}

	busy := make(map[string]bool, len(booked))
	for _, slot := range booked {
		busy[slot] = true
	}

	free := make([]string, 0, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		if !busy[slot] {
			free = append(free, slot)
		}
	}

	return free, nil
}

// persistenceError collapses store failures into the error taxonomy:
// a blown deadline becomes ErrUnavailable, anything else stays wrapped
// for the 500 path.
func persistenceError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrUnavailable
	}
	return err
}
