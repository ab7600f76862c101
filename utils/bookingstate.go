package utils

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// BookingState is the in-progress booking form a client had filled when the
// auth gate interrupted them. It travels through the login redirect as a
// URL-safe token and is restored on the booking page afterwards; nothing is
// persisted server-side.
type BookingState struct {
	Motivation      string `json:"motivation"`
	SelectedDate    string `json:"selectedDate"`
	SelectedTime    string `json:"selectedTime"`
	SelectedService string `json:"selectedService"`
}

// Encode serializes the state into a URL-safe token.
func (s BookingState) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeBookingState reverses Encode. A malformed token is a client error.
func DecodeBookingState(token string) (BookingState, error) {
	var state BookingState
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return state, fmt.Errorf("invalid booking state token: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("invalid booking state payload: %w", err)
	}
	return state, nil
}
