package service

import (
	"context"

	"go.uber.org/zap"

	"lexmarket/internal/domain"
	"lexmarket/internal/repository"
	"lexmarket/pkg/auth"
	"lexmarket/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	if dto.Email != nil && !validator.ValidateEmail(*dto.Email) {
		return domain.NewInvalidRequest("email", "is not a valid email address")
	}
	if dto.Phone != nil && !validator.ValidatePhone(*dto.Phone) {
		return domain.NewInvalidRequest("phone", "is not a valid phone number")
	}
	if dto.FirstName != nil {
		if !validator.ValidateNamePart(*dto.FirstName) {
			return domain.NewInvalidRequest("first_name", "is not a valid name")
		}
		formatted := validator.FormatName(*dto.FirstName)
		dto.FirstName = &formatted
	}
	if dto.LastName != nil {
		if !validator.ValidateNamePart(*dto.LastName) {
			return domain.NewInvalidRequest("last_name", "is not a valid name")
		}
		formatted := validator.FormatName(*dto.LastName)
		dto.LastName = &formatted
	}

	if dto.Email != nil {
		if existing, err := s.repo.GetByEmail(ctx, *dto.Email); err == nil && existing != nil && existing.ID != id {
			return domain.NewInvalidRequest("email", "is already registered")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil {
		s.logger.Error("verifying password failed", zap.Error(err))
		return domain.ErrUnauthorized
	}
	if !ok {
		return domain.NewInvalidRequest("old_password", "does not match")
	}

	if !validator.ValidatePassword(dto.NewPassword) {
		return domain.NewInvalidRequest("new_password", "must be at least 6 characters")
	}

	hashed, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("hashing password failed", zap.Error(err))
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, hashed); err != nil {
		s.logger.Error("updating password failed", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}
