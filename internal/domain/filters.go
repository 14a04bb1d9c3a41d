package domain

import (
	"bytes"
	"encoding/json"
)

// SearchFilters is an immutable snapshot of the constraints a client
// has chosen in the directory sidebar. Zero values mean unconstrained.
type SearchFilters struct {
	PracticeArea  string   `json:"practice_area,omitempty"`
	PriceMin      *float64 `json:"price_min,omitempty"`
	PriceMax      *float64 `json:"price_max,omitempty"`
	MinRating     int      `json:"min_rating,omitempty"`
	Location      string   `json:"location,omitempty"`
	MinExperience int      `json:"min_experience,omitempty"`
}

// Normalized returns a copy with inverted price bounds swapped, so a
// filter with min > max still describes a usable range.
func (f SearchFilters) Normalized() SearchFilters {
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		f.PriceMin, f.PriceMax = f.PriceMax, f.PriceMin
	}
	return f
}

// Opt is a tri-state JSON field: absent from the payload, explicitly
// null, or set to a value. It lets a filter patch distinguish "leave
// this constraint alone" from "clear it".
type Opt[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func Set[T any](v T) Opt[T] {
	return Opt[T]{Present: true, Value: v}
}

func Clear[T any]() Opt[T] {
	return Opt[T]{Present: true, Null: true}
}

// FilterPatch is a partial update of SearchFilters. Omitted fields keep
// the base value, null fields clear the constraint.
type FilterPatch struct {
	PracticeArea  Opt[string]  `json:"practice_area"`
	PriceMin      Opt[float64] `json:"price_min"`
	PriceMax      Opt[float64] `json:"price_max"`
	MinRating     Opt[int]     `json:"min_rating"`
	Location      Opt[string]  `json:"location"`
	MinExperience Opt[int]     `json:"min_experience"`
}

// ApplyFilterPatch overlays the provided patch fields onto base and
// returns the merged snapshot. All filter state changes go through
// this function; idempotent for any fixed patch.
func ApplyFilterPatch(base SearchFilters, patch FilterPatch) SearchFilters {
	out := base

	if patch.PracticeArea.Present {
		if patch.PracticeArea.Null {
			out.PracticeArea = ""
		} else {
			out.PracticeArea = patch.PracticeArea.Value
		}
	}
	if patch.PriceMin.Present {
		if patch.PriceMin.Null {
			out.PriceMin = nil
		} else {
			v := patch.PriceMin.Value
			out.PriceMin = &v
		}
	}
	if patch.PriceMax.Present {
		if patch.PriceMax.Null {
			out.PriceMax = nil
		} else {
			v := patch.PriceMax.Value
			out.PriceMax = &v
		}
	}
	if patch.MinRating.Present {
		if patch.MinRating.Null {
			out.MinRating = 0
		} else {
			out.MinRating = patch.MinRating.Value
		}
	}
	if patch.Location.Present {
		if patch.Location.Null {
			out.Location = ""
		} else {
			out.Location = patch.Location.Value
		}
	}
	if patch.MinExperience.Present {
		if patch.MinExperience.Null {
			out.MinExperience = 0
		} else {
			out.MinExperience = patch.MinExperience.Value
		}
	}

	return out
}

// Equal reports whether two filter snapshots describe the same
// constraints.
func (f SearchFilters) Equal(other SearchFilters) bool {
	if f.PracticeArea != other.PracticeArea ||
		f.MinRating != other.MinRating ||
		f.Location != other.Location ||
		f.MinExperience != other.MinExperience {
		return false
	}
	if !floatPtrEqual(f.PriceMin, other.PriceMin) {
		return false
	}
	return floatPtrEqual(f.PriceMax, other.PriceMax)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
