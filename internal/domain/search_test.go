package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func directory() []LawyerProfile {
	return []LawyerProfile{
		{
			ID: "l1", FirstName: "Sarah", LastName: "Mitchell",
			Specialties: []string{"Family Law", "Estate Planning"},
			HourlyRate:  150, Location: "New York", ExperienceYears: 8, Rating: 4.8,
		},
		{
			ID: "l2", FirstName: "David", LastName: "Chen",
			Specialties: []string{"Corporate Law"},
			HourlyRate:  350, Location: "San Francisco", ExperienceYears: 15, Rating: 4.9,
		},
		{
			ID: "l3", FirstName: "Maria", LastName: "Santos",
			Specialties: []string{"Immigration Law", "Family Law"},
			HourlyRate:  120, Location: "New York", ExperienceYears: 3, Rating: 4.2,
		},
		{
			ID: "l4", FirstName: "James", LastName: "Okafor",
			Specialties: []string{"Criminal Defense"},
			HourlyRate:  200, Location: "Chicago", ExperienceYears: 12, Rating: 3.9,
		},
	}
}

func ids(profiles []LawyerProfile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchLawyers(t *testing.T) {
	all := directory()

	t.Run("no constraints returns everything in order", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{}, "")
		assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, ids(got))
	})

	t.Run("practice area is case-sensitive exact membership", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{PracticeArea: "Family Law"}, "")
		assert.Equal(t, []string{"l1", "l3"}, ids(got))

		got = SearchLawyers(all, SearchFilters{PracticeArea: "family law"}, "")
		assert.Empty(t, got)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min, max := 120.0, 200.0
		got := SearchLawyers(all, SearchFilters{PriceMin: &min, PriceMax: &max}, "")
		assert.Equal(t, []string{"l1", "l3", "l4"}, ids(got))
	})

	t.Run("absent bound is unbounded on that side", func(t *testing.T) {
		min := 200.0
		got := SearchLawyers(all, SearchFilters{PriceMin: &min}, "")
		assert.Equal(t, []string{"l2", "l4"}, ids(got))
	})

	t.Run("minimum rating", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{MinRating: 4}, "")
		assert.Equal(t, []string{"l1", "l2", "l3"}, ids(got))
	})

	t.Run("location exact match", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{Location: "New York"}, "")
		assert.Equal(t, []string{"l1", "l3"}, ids(got))
	})

	t.Run("minimum experience", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{MinExperience: 10}, "")
		assert.Equal(t, []string{"l2", "l4"}, ids(got))
	})

	t.Run("free text matches names and specialties case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"l2"}, ids(SearchLawyers(all, SearchFilters{}, "chen")))
		assert.Equal(t, []string{"l3"}, ids(SearchLawyers(all, SearchFilters{}, "immigration")))
		assert.Equal(t, []string{"l1", "l3"}, ids(SearchLawyers(all, SearchFilters{}, "FAMILY")))
	})

	t.Run("constraints are conjunctive", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{PracticeArea: "Family Law", MinRating: 4, MinExperience: 5}, "")
		assert.Equal(t, []string{"l1"}, ids(got))
	})

	t.Run("relaxing a constraint yields a superset", func(t *testing.T) {
		strict := SearchFilters{Location: "New York", MinRating: 4, MinExperience: 5}
		relaxed := strict
		relaxed.MinExperience = 0

		strictIDs := ids(SearchLawyers(all, strict, ""))
		relaxedIDs := ids(SearchLawyers(all, relaxed, ""))

		assert.Subset(t, relaxedIDs, strictIDs)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		got := SearchLawyers(nil, SearchFilters{PracticeArea: "Family Law"}, "")
		assert.Empty(t, got)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		got := SearchLawyers(all, SearchFilters{Location: "Boston"}, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
