package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bba-git/bisousbisousmvp/middleware"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/routes"
	"github.com/bba-git/bisousbisousmvp/utils"
)

func testApp() *fiber.App {
	app := fiber.New()
	routes.SetupAppointmentRoutes(app)
	return app
}

func tokenFor(t *testing.T, id uuid.UUID, userType string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":        id.String(),
		"email":     "test@example.com",
		"user_type": userType,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(middleware.Secret()))
	assert.NoError(t, err)
	return token
}

func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCreateAppointmentUnauthenticated(t *testing.T) {
	app := testApp()

	req := jsonRequest("POST", "/appointments/", "", map[string]string{
		"professional_id":  uuid.NewString(),
		"motivation":       "consultation",
		"appointment_date": "2024-05-01T10:00",
	})
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	app := testApp()
	token := tokenFor(t, uuid.New(), "client")

	cases := []map[string]string{
		{"motivation": "m", "appointment_date": "2024-05-01T10:00"},
		{"professional_id": uuid.NewString(), "appointment_date": "2024-05-01T10:00"},
		{"professional_id": uuid.NewString(), "motivation": "m"},
		{},
	}

	for _, body := range cases {
		resp, err := app.Test(jsonRequest("POST", "/appointments/", token, body))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %v", body)
	}
}

func TestCreateAppointmentMalformedProfessionalID(t *testing.T) {
	app := testApp()
	token := tokenFor(t, uuid.New(), "client")

	resp, err := app.Test(jsonRequest("POST", "/appointments/", token, map[string]string{
		"professional_id":  "not-a-uuid",
		"motivation":       "m",
		"appointment_date": "2024-05-01T10:00",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListCustomerAppointmentsForbidden(t *testing.T) {
	app := testApp()
	token := tokenFor(t, uuid.New(), "client")
	other := uuid.New()

	resp, err := app.Test(jsonRequest("GET", "/appointments/customer/"+other.String(), token, nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "appointment_date")
}

func TestCreateAppointmentUnknownProfessional(t *testing.T) {
	gdb := setupTestDB(t)
	app := testApp()

	client := seedProfile(t, gdb, models.UserTypeClient, "")
	token := tokenFor(t, client.ID, "client")

	resp, err := app.Test(jsonRequest("POST", "/appointments/", token, map[string]string{
		"professional_id":  uuid.NewString(),
		"motivation":       "consultation",
		"appointment_date": "2026-10-01T10:00",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	assert.NoError(t, gdb.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "a rejected booking must not leave a row")
}

func TestCreateAppointmentRejectsClientCounterpart(t *testing.T) {
	gdb := setupTestDB(t)
	app := testApp()

	client := seedProfile(t, gdb, models.UserTypeClient, "")
	other := seedProfile(t, gdb, models.UserTypeClient, "")
	token := tokenFor(t, client.ID, "client")

	resp, err := app.Test(jsonRequest("POST", "/appointments/", token, map[string]string{
		"professional_id":  other.ID.String(),
		"motivation":       "consultation",
		"appointment_date": "2026-10-01T10:00",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateAppointmentRecordsPendingBooking(t *testing.T) {
	gdb := setupTestDB(t)
	app := testApp()

	client := seedProfile(t, gdb, models.UserTypeClient, "")
	pro := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")
	token := tokenFor(t, client.ID, "client")

	resp, err := app.Test(jsonRequest("POST", "/appointments/", token, map[string]string{
		"professional_id":  pro.ID.String(),
		"motivation":       "consultation",
		"appointment_date": "2026-10-01T10:00",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var appointment models.Appointment
	assert.NoError(t, gdb.First(&appointment, "client_id = ?", client.ID).Error)
	assert.Equal(t, pro.ID, appointment.ProfessionalID)
	assert.Equal(t, models.StatusPending, appointment.Status)
}

func TestResumeBookingStateRoundTrip(t *testing.T) {
	app := testApp()

	state := utils.BookingState{
		Motivation:      "M",
		SelectedDate:    "2024-05-01",
		SelectedTime:    "10:00",
		SelectedService: "S1",
	}
	token, err := state.Encode()
	assert.NoError(t, err)

	resp, err := app.Test(jsonRequest("GET", "/appointments/resume?state="+token, "", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded utils.BookingState
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, state, decoded)
}

func TestResumeBookingStateRejectsBadToken(t *testing.T) {
	app := testApp()

	resp, err := app.Test(jsonRequest("GET", "/appointments/resume?state=%21%21%21", "", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/appointments/resume", "", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
