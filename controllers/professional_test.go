package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/routes"
)

func landingApp() *fiber.App {
	app := fiber.New()
	routes.SetupLandingRoutes(app)
	return app
}

type landingResponse struct {
	Professional models.Profile   `json:"professional"`
	Addresses    []models.Address `json:"addresses"`
	Services     []models.Service `json:"services"`
}

func TestLandingUnknownProfessional(t *testing.T) {
	setupTestDB(t)
	app := landingApp()

	req := httptest.NewRequest("GET", "/sophrologie/paris/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLandingProfessionMismatch(t *testing.T) {
	gdb := setupTestDB(t)
	app := landingApp()

	pro := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")

	req := httptest.NewRequest("GET", "/naturopathie/paris/"+pro.ID.String(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLandingProfessionMatchIgnoresCase(t *testing.T) {
	gdb := setupTestDB(t)
	app := landingApp()

	pro := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")

	req := httptest.NewRequest("GET", "/sophrologie/paris/"+pro.ID.String(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLandingClientProfileHidden(t *testing.T) {
	gdb := setupTestDB(t)
	app := landingApp()

	client := seedProfile(t, gdb, models.UserTypeClient, "")

	req := httptest.NewRequest("GET", "/sophrologie/paris/"+client.ID.String(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLandingWithoutAddressesOrServices(t *testing.T) {
	gdb := setupTestDB(t)
	app := landingApp()

	pro := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")

	req := httptest.NewRequest("GET", "/sophrologie/paris/"+pro.ID.String(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body landingResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, pro.ID, body.Professional.ID)
	assert.Empty(t, body.Professional.Password)
	assert.NotNil(t, body.Addresses)
	assert.Len(t, body.Addresses, 0)
	assert.NotNil(t, body.Services)
	assert.Len(t, body.Services, 0)

	// Defaults are applied for an unconfigured professional.
	if assert.NotNil(t, body.Professional.WorkingHours) {
		assert.Equal(t, "09:00", body.Professional.WorkingHours.Start)
	}
}

func TestLandingListsAddressesPrimaryFirst(t *testing.T) {
	gdb := setupTestDB(t)
	app := landingApp()

	pro := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")
	seedAddress(t, gdb, pro.ID, "Lyon", false)
	seedAddress(t, gdb, pro.ID, "Paris", true)

	req := httptest.NewRequest("GET", "/sophrologie/paris/"+pro.ID.String(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body landingResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	if assert.Len(t, body.Addresses, 2) {
		assert.True(t, body.Addresses[0].IsPrimary)
		assert.Equal(t, "Paris", body.Addresses[0].City)
	}
}
