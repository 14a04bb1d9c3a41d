package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingDTOValidate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	valid := CreateBookingDTO{
		LawyerID: "lawyer-1",
		Date:     "2099-01-01",
		Time:     "10:00",
		Type:     ConsultationTypeVideo,
	}

	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate(now))
	})

	t.Run("today is not in the past", func(t *testing.T) {
		dto := valid
		dto.Date = "2025-06-15"
		assert.NoError(t, dto.Validate(now))
	})

	cases := []struct {
		name   string
		mutate func(*CreateBookingDTO)
		field  string
	}{
		{"missing lawyer_id", func(d *CreateBookingDTO) { d.LawyerID = "" }, "lawyer_id"},
		{"missing date", func(d *CreateBookingDTO) { d.Date = "" }, "date"},
		{"malformed date", func(d *CreateBookingDTO) { d.Date = "01/02/2099" }, "date"},
		{"impossible date", func(d *CreateBookingDTO) { d.Date = "2099-02-30" }, "date"},
		{"past date", func(d *CreateBookingDTO) { d.Date = "2025-06-14" }, "date"},
		{"missing time", func(d *CreateBookingDTO) { d.Time = "" }, "time"},
		{"time outside slot set", func(d *CreateBookingDTO) { d.Time = "08:30" }, "time"},
		{"missing type", func(d *CreateBookingDTO) { d.Type = "" }, "type"},
		{"unknown type", func(d *CreateBookingDTO) { d.Type = "CARRIER_PIGEON" }, "type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dto := valid
			tc.mutate(&dto)

			err := dto.Validate(now)
			require.Error(t, err)

			var invalid *InvalidRequestError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusCancelled))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCompleted))

	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusConfirmed))
	assert.False(t, BookingStatusCompleted.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusPending))
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, IsValidTimeSlot(slot))
	}
	assert.False(t, IsValidTimeSlot("18:00"))
	assert.False(t, IsValidTimeSlot("9:00"))
}

func TestValidateSpecialties(t *testing.T) {
	assert.NoError(t, ValidateSpecialties([]string{"Family Law", "Tax Law"}))

	var invalid *InvalidRequestError

	err := ValidateSpecialties(nil)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "specialties", invalid.Field)

	assert.Error(t, ValidateSpecialties([]string{"Family Law", " "}))
	assert.Error(t, ValidateSpecialties([]string{"Family Law", "Family Law"}))
}
