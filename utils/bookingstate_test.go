package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStateRoundTrip(t *testing.T) {
	state := BookingState{
		Motivation:      "M",
		SelectedDate:    "2024-05-01",
		SelectedTime:    "10:00",
		SelectedService: "S1",
	}

	token, err := state.Encode()
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	decoded, err := DecodeBookingState(token)
	assert.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestBookingStateEmptyFields(t *testing.T) {
	token, err := BookingState{}.Encode()
	assert.NoError(t, err)

	decoded, err := DecodeBookingState(token)
	assert.NoError(t, err)
	assert.Equal(t, BookingState{}, decoded)
}

func TestDecodeBookingStateInvalidToken(t *testing.T) {
	_, err := DecodeBookingState("not base64!!!")
	assert.Error(t, err)

	// valid base64, not JSON
	_, err = DecodeBookingState("bm90IGpzb24")
	assert.Error(t, err)
}
