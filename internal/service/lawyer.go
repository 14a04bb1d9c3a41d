package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"lexmarket/internal/domain"
	"lexmarket/internal/repository"
	"lexmarket/internal/storage"
)

type LawyerServiceImpl struct {
	repo        repository.LawyerRepository
	cache       DirectoryCache
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewLawyerService(
	repo repository.LawyerRepository,
	cache DirectoryCache,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *LawyerServiceImpl {
	return &LawyerServiceImpl{
		repo:        repo,
		cache:       cache,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *LawyerServiceImpl) Create(ctx context.Context, userID string, dto domain.CreateLawyerDTO) (string, error) {
	if err := domain.ValidateSpecialties(dto.Specialties); err != nil {
		return "", err
	}
	if dto.HourlyRate < 0 {
		return "", domain.NewInvalidRequest("hourly_rate", "must not be negative")
	}

	if existing, err := s.repo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return "", domain.NewInvalidRequest("user_id", "already has a lawyer profile")
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		s.logger.Error("creating lawyer profile failed", zap.String("userID", userID), zap.Error(err))
		return "", err
	}

	s.invalidateDirectory(ctx)
	return id, nil
}

func (s *LawyerServiceImpl) GetByID(ctx context.Context, id string) (*domain.LawyerProfile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("fetching lawyer profile failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return profile, nil
}

func (s *LawyerServiceImpl) GetByUserID(ctx context.Context, userID string) (*domain.LawyerProfile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *LawyerServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateLawyerDTO) error {
	if dto.Specialties != nil {
		if err := domain.ValidateSpecialties(dto.Specialties); err != nil {
			return err
		}
	}
	if dto.HourlyRate != nil && *dto.HourlyRate < 0 {
		return domain.NewInvalidRequest("hourly_rate", "must not be negative")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating lawyer profile failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateDirectory(ctx)
	return nil
}

func (s *LawyerServiceImpl) SetVerified(ctx context.Context, id string, verified bool) error {
	if err := s.repo.SetVerified(ctx, id, verified); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		s.logger.Error("updating lawyer verification failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateDirectory(ctx)
	return nil
}

// Search serves the marketplace directory: the verified-lawyer
// snapshot comes from the cache when fresh, from Postgres otherwise,
// and is filtered in memory by the pure directory query.
func (s *LawyerServiceImpl) Search(ctx context.Context, filters domain.SearchFilters, query string) ([]domain.LawyerProfile, error) {
	all, err := s.directorySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return domain.SearchLawyers(all, filters, query), nil
}

// Facets derives the distinct practice areas and locations offered by
// the filter sidebar, sorted for stable output.
func (s *LawyerServiceImpl) Facets(ctx context.Context) (*domain.DirectoryFacets, error) {
	all, err := s.directorySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	areaSet := make(map[string]bool)
	locationSet := make(map[string]bool)
	for _, p := range all {
		for _, a := range p.Specialties {
			areaSet[a] = true
		}
		if p.Location != "" {
			locationSet[p.Location] = true
		}
	}

	facets := &domain.DirectoryFacets{
		PracticeAreas: make([]string, 0, len(areaSet)),
		Locations:     make([]string, 0, len(locationSet)),
	}
	for a := range areaSet {
		facets.PracticeAreas = append(facets.PracticeAreas, a)
	}
	for l := range locationSet {
		facets.Locations = append(facets.Locations, l)
	}
	sort.Strings(facets.PracticeAreas)
	sort.Strings(facets.Locations)

	return facets, nil
}

func (s *LawyerServiceImpl) directorySnapshot(ctx context.Context) ([]domain.LawyerProfile, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	all, err := s.repo.ListVerified(ctx)
	if err != nil {
		s.logger.Error("loading lawyer directory failed", zap.Error(err))
		return nil, err
	}

	s.cache.Set(ctx, all)
	return all, nil
}

func (s *LawyerServiceImpl) invalidateDirectory(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func (s *LawyerServiceImpl) UploadAvatar(ctx context.Context, lawyerID string, data []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", domain.ErrUnavailable
	}

	profile, err := s.repo.GetByID(ctx, lawyerID)
	if err != nil {
		return "", err
	}

	url, err := s.fileStorage.UploadAvatar(ctx, data, filename)
	if err != nil {
		s.logger.Error("uploading avatar failed", zap.String("lawyerID", lawyerID), zap.Error(err))
		return "", err
	}

	if profile.AvatarURL != "" {
		if err := s.fileStorage.DeleteAvatar(ctx, profile.AvatarURL); err != nil {
			s.logger.Warn("removing previous avatar failed", zap.Error(err))
		}
	}

	if err := s.repo.UpdateAvatar(ctx, lawyerID, url); err != nil {
		return "", err
	}

	s.invalidateDirectory(ctx)
	return url, nil
}

func (s *LawyerServiceImpl) DeleteAvatar(ctx context.Context, lawyerID string) error {
	if s.fileStorage == nil {
		return domain.ErrUnavailable
	}

	profile, err := s.repo.GetByID(ctx, lawyerID)
	if err != nil {
		return err
	}

	if profile.AvatarURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteAvatar(ctx, profile.AvatarURL); err != nil {
		s.logger.Error("deleting avatar failed", zap.String("lawyerID", lawyerID), zap.Error(err))
		return err
	}

	if err := s.repo.UpdateAvatar(ctx, lawyerID, ""); err != nil {
		return err
	}

	s.invalidateDirectory(ctx)
	return nil
}
