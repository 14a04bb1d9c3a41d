package domain

import (
	"time"
)

type Review struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ClientID   string    `json:"client_id"`
	LawyerID   string    `json:"lawyer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ClientName string    `json:"client_name,omitempty"`
}

type CreateReviewDTO struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewFilter struct {
	LawyerID *string `json:"lawyer_id"`
	ClientID *string `json:"client_id"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}
