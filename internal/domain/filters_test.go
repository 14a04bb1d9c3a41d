package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFilterPatch(t *testing.T) {
	min := 50.0
	base := SearchFilters{
		PracticeArea: "Family Law",
		PriceMin:     &min,
		MinRating:    4,
		Location:     "New York",
	}

	t.Run("omitted fields survive a partial update", func(t *testing.T) {
		out := ApplyFilterPatch(base, FilterPatch{
			MinRating: Set(3),
		})
		assert.Equal(t, "Family Law", out.PracticeArea)
		require.NotNil(t, out.PriceMin)
		assert.Equal(t, 50.0, *out.PriceMin)
		assert.Equal(t, 3, out.MinRating)
		assert.Equal(t, "New York", out.Location)
	})

	t.Run("explicit null clears a field", func(t *testing.T) {
		out := ApplyFilterPatch(base, FilterPatch{
			PracticeArea: Clear[string](),
			PriceMin:     Clear[float64](),
		})
		assert.Empty(t, out.PracticeArea)
		assert.Nil(t, out.PriceMin)
		assert.Equal(t, 4, out.MinRating)
	})

	t.Run("base is not mutated", func(t *testing.T) {
		_ = ApplyFilterPatch(base, FilterPatch{Location: Clear[string]()})
		assert.Equal(t, "New York", base.Location)
	})

	t.Run("idempotent", func(t *testing.T) {
		patch := FilterPatch{
			PracticeArea: Set("Tax Law"),
			PriceMax:     Set(300.0),
			Location:     Clear[string](),
		}
		once := ApplyFilterPatch(base, patch)
		twice := ApplyFilterPatch(once, patch)
		assert.True(t, once.Equal(twice))
	})
}

func TestFilterPatchUnmarshalJSON(t *testing.T) {
	var patch FilterPatch
	err := json.Unmarshal([]byte(`{"practice_area":null,"min_rating":2}`), &patch)
	require.NoError(t, err)

	assert.True(t, patch.PracticeArea.Present)
	assert.True(t, patch.PracticeArea.Null)
	assert.True(t, patch.MinRating.Present)
	assert.False(t, patch.MinRating.Null)
	assert.Equal(t, 2, patch.MinRating.Value)
	assert.False(t, patch.Location.Present)
}

func TestSearchFiltersNormalized(t *testing.T) {
	lo, hi := 100.0, 400.0

	t.Run("inverted bounds are swapped", func(t *testing.T) {
		f := SearchFilters{PriceMin: &hi, PriceMax: &lo}.Normalized()
		assert.Equal(t, 100.0, *f.PriceMin)
		assert.Equal(t, 400.0, *f.PriceMax)
	})

	t.Run("ordered bounds untouched", func(t *testing.T) {
		f := SearchFilters{PriceMin: &lo, PriceMax: &hi}.Normalized()
		assert.Equal(t, 100.0, *f.PriceMin)
		assert.Equal(t, 400.0, *f.PriceMax)
	})

	t.Run("single bound untouched", func(t *testing.T) {
		f := SearchFilters{PriceMax: &lo}.Normalized()
		assert.Nil(t, f.PriceMin)
		assert.Equal(t, 100.0, *f.PriceMax)
	})
}
