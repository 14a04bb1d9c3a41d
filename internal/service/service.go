package service

import (
	"context"

	"go.uber.org/zap"

	"lexmarket/config"
	"lexmarket/internal/domain"
	"lexmarket/internal/notification"
	"lexmarket/internal/repository"
	"lexmarket/internal/storage"
)

// DirectoryCache is the snapshot store the lawyer service reads the
// directory through. Implemented by cache.DirectoryCache.
type DirectoryCache interface {
	Get(ctx context.Context) ([]domain.LawyerProfile, bool)
	Set(ctx context.Context, profiles []domain.LawyerProfile)
	Invalidate(ctx context.Context)
}

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       DirectoryCache
	Notifier    notification.Notifier
}

type Services struct {
	User    UserService
	Auth    AuthService
	Lawyer  LawyerService
	Booking BookingService
	Review  ReviewService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:    NewUserService(deps.Repos.User, deps.Logger),
		Auth:    NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Lawyer:  NewLawyerService(deps.Repos.Lawyer, deps.Cache, deps.FileStorage, deps.Logger),
		Booking: NewBookingService(deps.Repos.Booking, deps.Repos.Lawyer, deps.Notifier, deps.Config.Booking, deps.Logger),
		Review:  NewReviewService(deps.Repos.Review, deps.Repos.Booking, deps.Cache, deps.Logger),
	}
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (string, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (string, domain.UserRole, error)
}

type LawyerService interface {
	Create(ctx context.Context, userID string, dto domain.CreateLawyerDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.LawyerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.LawyerProfile, error)
	Update(ctx context.Context, id string, dto domain.UpdateLawyerDTO) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Search(ctx context.Context, filters domain.SearchFilters, query string) ([]domain.LawyerProfile, error)
	Facets(ctx context.Context) (*domain.DirectoryFacets, error)
	UploadAvatar(ctx context.Context, lawyerID string, data []byte, filename string) (string, error)
	DeleteAvatar(ctx context.Context, lawyerID string) error
}

type BookingService interface {
	Create(ctx context.Context, clientID string, dto domain.CreateBookingDTO) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id string, next domain.BookingStatus) error
	FreeSlots(ctx context.Context, lawyerID string, date string) ([]string, error)
}

type ReviewService interface {
	Create(ctx context.Context, clientID string, dto domain.CreateReviewDTO) (string, error)
	ListByLawyer(ctx context.Context, lawyerID string, limit, offset int) ([]domain.Review, int, error)
}
