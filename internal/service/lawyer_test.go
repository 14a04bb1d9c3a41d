package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexmarket/internal/domain"
)

type fakeCache struct {
	snapshot    []domain.LawyerProfile
	hit         bool
	sets        int
	invalidates int
}

func (c *fakeCache) Get(ctx context.Context) ([]domain.LawyerProfile, bool) {
	if !c.hit {
		return nil, false
	}
	return c.snapshot, true
}

func (c *fakeCache) Set(ctx context.Context, profiles []domain.LawyerProfile) {
	c.snapshot = profiles
	c.hit = true
	c.sets++
}

func (c *fakeCache) Invalidate(ctx context.Context) {
	c.snapshot = nil
	c.hit = false
	c.invalidates++
}

func directoryFixture() []domain.LawyerProfile {
	return []domain.LawyerProfile{
		{ID: "lw-1", FirstName: "Ana", LastName: "Silva", Specialties: []string{"Family Law"}, HourlyRate: 150, Location: "Lisbon", Rating: 4.5, IsVerified: true},
		{ID: "lw-2", FirstName: "Ben", LastName: "Okafor", Specialties: []string{"Corporate Law", "Tax Law"}, HourlyRate: 300, Location: "Porto", Rating: 4.9, IsVerified: true},
		{ID: "lw-3", FirstName: "Carla", LastName: "Mota", Specialties: []string{"Family Law", "Tax Law"}, HourlyRate: 220, Location: "Lisbon", Rating: 3.8, IsVerified: true},
	}
}

func TestLawyerSearchUsesCacheSnapshot(t *testing.T) {
	lawyers := newFakeLawyerRepo()
	cache := &fakeCache{snapshot: directoryFixture(), hit: true}
	svc := NewLawyerService(lawyers, cache, nil, zap.NewNop())

	// Repo returns nothing, so any results must come from the cache.
	got, err := svc.Search(context.Background(), domain.SearchFilters{}, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Zero(t, cache.sets)
}

func TestLawyerSearchFillsCacheOnMiss(t *testing.T) {
	lawyers := newFakeLawyerRepo()
	lawyers.verified = directoryFixture()
	cache := &fakeCache{}
	svc := NewLawyerService(lawyers, cache, nil, zap.NewNop())

	got, err := svc.Search(context.Background(), domain.SearchFilters{Location: "Lisbon"}, "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "lw-1", got[0].ID)
	assert.Equal(t, "lw-3", got[1].ID)
	assert.Equal(t, 1, cache.sets)
}

func TestLawyerFacets(t *testing.T) {
	lawyers := newFakeLawyerRepo()
	lawyers.verified = directoryFixture()
	svc := NewLawyerService(lawyers, &fakeCache{}, nil, zap.NewNop())

	facets, err := svc.Facets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Corporate Law", "Family Law", "Tax Law"}, facets.PracticeAreas)
	assert.Equal(t, []string{"Lisbon", "Porto"}, facets.Locations)
}

func TestLawyerCreateRejectsBadInput(t *testing.T) {
	lawyers := newFakeLawyerRepo()
	svc := NewLawyerService(lawyers, &fakeCache{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), "u-1", domain.CreateLawyerDTO{
		Specialties: []string{},
		HourlyRate:  100,
	})
	var invalid *domain.InvalidRequestError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.Create(context.Background(), "u-1", domain.CreateLawyerDTO{
		Specialties: []string{"Family Law"},
		HourlyRate:  -10,
	})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "hourly_rate", invalid.Field)
}

func TestLawyerMutationsInvalidateDirectory(t *testing.T) {
	lawyers := newFakeLawyerRepo()
	lawyers.profiles["lw-1"] = verifiedLawyer("lw-1", 200)
	cache := &fakeCache{snapshot: directoryFixture(), hit: true}
	svc := NewLawyerService(lawyers, cache, nil, zap.NewNop())

	rate := 250.0
	require.NoError(t, svc.Update(context.Background(), "lw-1", domain.UpdateLawyerDTO{HourlyRate: &rate}))
	require.NoError(t, svc.SetVerified(context.Background(), "lw-1", true))

	assert.Equal(t, 2, cache.invalidates)
}

func TestLawyerSetVerifiedUnknown(t *testing.T) {
	svc := NewLawyerService(newFakeLawyerRepo(), &fakeCache{}, nil, zap.NewNop())

	err := svc.SetVerified(context.Background(), "nope", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
