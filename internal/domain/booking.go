package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// CanTransitionTo reports whether a status change is legal. The create
// path only ever writes PENDING; the remaining transitions are driven
// by the confirm/cancel/complete endpoints.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case BookingStatusConfirmed:
		return s == BookingStatusPending
	case BookingStatusCancelled:
		return s == BookingStatusPending || s == BookingStatusConfirmed
	case BookingStatusCompleted:
		return s == BookingStatusConfirmed
	default:
		return false
	}
}

type ConsultationType string

const (
	ConsultationTypeVideo    ConsultationType = "VIDEO"
	ConsultationTypePhone    ConsultationType = "PHONE"
	ConsultationTypeInPerson ConsultationType = "IN_PERSON"
)

func (t ConsultationType) IsValid() bool {
	return t == ConsultationTypeVideo || t == ConsultationTypePhone || t == ConsultationTypeInPerson
}

// TimeSlots is the fixed set of bookable start times.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00",
	"17:00",
}

func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

const DateLayout = "2006-01-02"

type Booking struct {
	ID         string           `json:"id"`
	ClientID   string           `json:"client_id"`
	LawyerID   string           `json:"lawyer_id"`
	Date       string           `json:"date"`
	Time       string           `json:"time"`
	Type       ConsultationType `json:"type"`
	Price      float64          `json:"price"`
	Status     BookingStatus    `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	ClientName string           `json:"client_name,omitempty"`
	LawyerName string           `json:"lawyer_name,omitempty"`
}

// CreateBookingDTO carries the client's booking request. It has no
// price field on purpose: the persisted price is always derived
// server-side from the lawyer's current hourly rate.
type CreateBookingDTO struct {
	LawyerID string           `json:"lawyer_id"`
	Date     string           `json:"date"`
	Time     string           `json:"time"`
	Type     ConsultationType `json:"type"`
}

// Validate checks the request before any lookup or persistence call is
// made, reporting the first offending field.
func (d CreateBookingDTO) Validate(now time.Time) error {
	if d.LawyerID == "" {
		return NewInvalidRequest("lawyer_id", "is required")
	}
	if d.Date == "" {
		return NewInvalidRequest("date", "is required")
	}

	date, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return NewInvalidRequest("date", "must be a valid date in YYYY-MM-DD format")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return NewInvalidRequest("date", "must not be in the past")
	}

	if d.Time == "" {
		return NewInvalidRequest("time", "is required")
	}
	if !IsValidTimeSlot(d.Time) {
		return NewInvalidRequest("time", "must be one of the available time slots")
	}

	if d.Type == "" {
		return NewInvalidRequest("type", "is required")
	}
	if !d.Type.IsValid() {
		return NewInvalidRequest("type", "must be one of VIDEO, PHONE, IN_PERSON")
	}

	return nil
}

type BookingFilter struct {
	ClientID *string        `json:"client_id"`
	LawyerID *string        `json:"lawyer_id"`
	Status   *BookingStatus `json:"status"`
	FromDate *string        `json:"from_date"`
	ToDate   *string        `json:"to_date"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
}
