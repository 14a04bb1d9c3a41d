package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lexmarket/internal/domain"
	"lexmarket/internal/repository"
)

type ReviewServiceImpl struct {
	repo        repository.ReviewRepository
	bookingRepo repository.BookingRepository
	cache       DirectoryCache
	logger      *zap.Logger
}

func NewReviewService(
	repo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	cache DirectoryCache,
	logger *zap.Logger,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Create accepts a review only from the client who holds the booking,
// and only once the consultation is COMPLETED. One review per booking.
func (s *ReviewServiceImpl) Create(ctx context.Context, clientID string, dto domain.CreateReviewDTO) (string, error) {
	if dto.Rating < 1 || dto.Rating > 5 {
		return "", domain.NewInvalidRequest("rating", "must be between 1 and 5")
	}

	booking, err := s.bookingRepo.GetByID(ctx, dto.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		s.logger.Error("fetching booking for review failed", zap.String("bookingID", dto.BookingID), zap.Error(err))
		return "", err
	}

	if booking.ClientID != clientID {
		return "", domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusCompleted {
		return "", domain.NewInvalidRequest("booking_id", "can only be reviewed after completion")
	}

	if existing, err := s.repo.GetByBookingID(ctx, dto.BookingID); err == nil && existing != nil {
		return "", domain.NewInvalidRequest("booking_id", "has already been reviewed")
	}

	id, err := s.repo.Create(ctx, clientID, booking.LawyerID, dto)
	if err != nil {
		s.logger.Error("creating review failed", zap.String("bookingID", dto.BookingID), zap.Error(err))
		return "", err
	}

	// The lawyer's denormalized rating changed, so the cached
	// directory snapshot is stale.
	s.cache.Invalidate(ctx)

	return id, nil
}

func (s *ReviewServiceImpl) ListByLawyer(ctx context.Context, lawyerID string, limit, offset int) ([]domain.Review, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := domain.ReviewFilter{
		LawyerID: &lawyerID,
		Limit:    limit,
		Offset:   offset,
	}

	reviews, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing reviews failed", zap.String("lawyerID", lawyerID), zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("counting reviews failed", zap.String("lawyerID", lawyerID), zap.Error(err))
		return nil, 0, err
	}

	return reviews, total, nil
}
