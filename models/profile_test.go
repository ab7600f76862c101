package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsBackfillsMissingFields(t *testing.T) {
	p := Profile{UserType: UserTypeProfessional}
	p.ApplyDefaults()

	if assert.NotNil(t, p.Availability) {
		assert.Len(t, *p.Availability, 7)
		for day, open := range *p.Availability {
			assert.False(t, open, "default availability for %s must be closed", day)
		}
	}
	if assert.NotNil(t, p.WorkingHours) {
		assert.Equal(t, "09:00", p.WorkingHours.Start)
		assert.Equal(t, "17:00", p.WorkingHours.End)
	}
}

func TestIsProfessional(t *testing.T) {
	assert.True(t, (&Profile{UserType: UserTypeProfessional}).IsProfessional())
	assert.False(t, (&Profile{UserType: UserTypeClient}).IsProfessional())
	assert.False(t, (&Profile{}).IsProfessional())
}

func TestApplyDefaultsKeepsDeclaredValues(t *testing.T) {
	avail := Availability{"monday": true}
	hours := WorkingHours{Start: "08:30", End: "19:00"}
	p := Profile{Availability: &avail, WorkingHours: &hours}

	p.ApplyDefaults()

	assert.True(t, (*p.Availability)["monday"])
	assert.Equal(t, "08:30", p.WorkingHours.Start)
	assert.Equal(t, "19:00", p.WorkingHours.End)
}
