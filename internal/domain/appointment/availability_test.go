package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var clinic = ClinicHours{Open: "08:00", Close: "20:00", LunchStart: "12:00", LunchEnd: "13:00"}

func TestFreeSlotsSkipsLunchAndBookedSlots(t *testing.T) {
	day := at("00:00")
	existing := []models.Appointment{
		appt(StatusConfirmed, "09:00"),
		appt(StatusCancelled, "10:00"),
	}

	slots, err := FreeSlots(day, clinic, existing, day)
	require.NoError(t, err)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{
		"08:00", "10:00", "11:00",
		"13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
	}, starts)
	assert.Equal(t, "20:00", slots[len(slots)-1].End)
}

func TestFreeSlotsDropsPastSlots(t *testing.T) {
	slots, err := FreeSlots(at("00:00"), clinic, nil, at("17:30"))
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "18:00", slots[0].Start)
}

func TestFreeSlotsRejectsBadHours(t *testing.T) {
	_, err := FreeSlots(at("00:00"), ClinicHours{Open: "8h", Close: "20:00"}, nil, time.Time{})
	assert.Error(t, err)
}

func TestClinicHours(t *testing.T) {
	require.NoError(t, clinic.Validate())
	assert.Error(t, ClinicHours{Open: "20:00", Close: "08:00"}.Validate())
	assert.Error(t, ClinicHours{Open: "08:00", Close: "20:00", LunchStart: "13:00", LunchEnd: "12:00"}.Validate())

	ok, err := clinic.IsWithin(at("08:00"), at("09:00"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = clinic.IsWithin(at("11:30"), at("12:30"))
	assert.False(t, ok, "touches lunch")

	ok, _ = clinic.IsWithin(at("19:30"), at("20:30"))
	assert.False(t, ok, "past closing")

	ok, _ = ClinicHours{Open: "08:00", Close: "20:00"}.IsWithin(at("12:00"), at("13:00"))
	assert.True(t, ok, "no lunch configured")
}
