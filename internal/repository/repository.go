package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lexmarket/internal/domain"
)

type Repositories struct {
	User    UserRepository
	Auth    AuthRepository
	Lawyer  LawyerRepository
	Booking BookingRepository
	Review  ReviewRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Auth:    NewAuthRepository(db),
		Lawyer:  NewLawyerRepository(db),
		Booking: NewBookingRepository(db),
		Review:  NewReviewRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
}

type LawyerRepository interface {
	Create(ctx context.Context, userID string, dto domain.CreateLawyerDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.LawyerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.LawyerProfile, error)
	Update(ctx context.Context, id string, dto domain.UpdateLawyerDTO) error
	SetVerified(ctx context.Context, id string, verified bool) error
	UpdateAvatar(ctx context.Context, id string, avatarURL string) error
	ListVerified(ctx context.Context) ([]domain.LawyerProfile, error)
}

type BookingRepository interface {
	// Create inserts the booking in a single transaction that also
	// checks the (lawyer, date, time) slot for a live conflict; the
	// losing writer gets domain.ErrSlotTaken.
	Create(ctx context.Context, clientID string, dto domain.CreateBookingDTO, price float64) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error)
	BookedSlots(ctx context.Context, lawyerID string, date string) ([]string, error)
}

type ReviewRepository interface {
	// Create inserts the review and recomputes the lawyer's
	// denormalized rating and review count in the same transaction.
	Create(ctx context.Context, clientID string, lawyerID string, dto domain.CreateReviewDTO) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	CountByFilter(ctx context.Context, filter domain.ReviewFilter) (int, error)
}
