package domain

import (
	"strings"
	"time"
)

// LawyerProfile is the canonical marketplace representation of a
// lawyer. Name, email and avatar are denormalized from the owning user
// account so directory cards render without extra lookups. Rating and
// ReviewCount are maintained by the review repository in the same
// transaction that inserts a review.
type LawyerProfile struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Specialties     []string  `json:"specialties"`
	HourlyRate      float64   `json:"hourly_rate"`
	Location        string    `json:"location"`
	ExperienceYears int       `json:"experience_years"`
	Bio             string    `json:"bio,omitempty"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateLawyerDTO struct {
	Specialties     []string `json:"specialties" binding:"required,min=1"`
	HourlyRate      float64  `json:"hourly_rate" binding:"min=0"`
	Location        string   `json:"location" binding:"required"`
	ExperienceYears int      `json:"experience_years" binding:"min=0"`
	Bio             string   `json:"bio"`
}

type UpdateLawyerDTO struct {
	Specialties     []string `json:"specialties"`
	HourlyRate      *float64 `json:"hourly_rate" binding:"omitempty,min=0"`
	Location        *string  `json:"location"`
	ExperienceYears *int     `json:"experience_years" binding:"omitempty,min=0"`
	Bio             *string  `json:"bio"`
}

// ValidateSpecialties enforces the profile invariant: labels are
// non-empty and not duplicated within one profile.
func ValidateSpecialties(specialties []string) error {
	if len(specialties) == 0 {
		return NewInvalidRequest("specialties", "must not be empty")
	}

	seen := make(map[string]bool, len(specialties))
	for _, s := range specialties {
		if strings.TrimSpace(s) == "" {
			return NewInvalidRequest("specialties", "must not contain empty labels")
		}
		if seen[s] {
			return NewInvalidRequest("specialties", "must not contain duplicates")
		}
		seen[s] = true
	}

	return nil
}

// DirectoryFacets holds the distinct values the filter sidebar offers.
type DirectoryFacets struct {
	PracticeAreas []string `json:"practice_areas"`
	Locations     []string `json:"locations"`
}
