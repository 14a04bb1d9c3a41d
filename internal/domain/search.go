package domain

import (
	"strings"
)

// SearchLawyers filters the directory sequence down to the profiles
// matching every supplied constraint plus the optional free-text
// query. The result preserves the relative order of the input and is
// never re-sorted here; an empty result is a valid outcome.
func SearchLawyers(all []LawyerProfile, filters SearchFilters, query string) []LawyerProfile {
	filters = filters.Normalized()
	query = strings.TrimSpace(query)

	matched := make([]LawyerProfile, 0, len(all))
	for _, p := range all {
		if !matchesFilters(p, filters) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		matched = append(matched, p)
	}

	return matched
}

func matchesFilters(p LawyerProfile, f SearchFilters) bool {
	if f.PracticeArea != "" && !hasSpecialty(p, f.PracticeArea) {
		return false
	}
	if f.PriceMin != nil && p.HourlyRate < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.HourlyRate > *f.PriceMax {
		return false
	}
	if f.MinRating > 0 && p.Rating < float64(f.MinRating) {
		return false
	}
	if f.Location != "" && p.Location != f.Location {
		return false
	}
	if f.MinExperience > 0 && p.ExperienceYears < f.MinExperience {
		return false
	}
	return true
}

// hasSpecialty is a case-sensitive exact membership test against the
// profile's specialty labels.
func hasSpecialty(p LawyerProfile, area string) bool {
	for _, s := range p.Specialties {
		if s == area {
			return true
		}
	}
	return false
}

func matchesQuery(p LawyerProfile, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.FirstName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.LastName), q) {
		return true
	}
	for _, s := range p.Specialties {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
