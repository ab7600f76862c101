package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/routes"
)

func addressApp() *fiber.App {
	app := fiber.New()
	routes.SetupProfileRoutes(app)
	return app
}

func TestCreateAddressPromotionDemotesExistingPrimary(t *testing.T) {
	gdb := setupTestDB(t)
	app := addressApp()

	owner := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")
	seedAddress(t, gdb, owner.ID, "Lyon", true)
	token := tokenFor(t, owner.ID, "professional")

	resp, err := app.Test(jsonRequest("POST", "/addresses/", token, map[string]interface{}{
		"street_address": "2 place Bellecour",
		"city":           "Paris",
		"is_primary":     true,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Address
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.True(t, created.IsPrimary)

	assert.EqualValues(t, 1, countPrimaries(t, gdb, owner.ID))

	var primary models.Address
	assert.NoError(t, gdb.Where("profile_id = ? AND is_primary = ?", owner.ID, true).
		First(&primary).Error)
	assert.Equal(t, "Paris", primary.City)
}

func TestCreateAddressWithoutPrimaryFlag(t *testing.T) {
	gdb := setupTestDB(t)
	app := addressApp()

	owner := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")
	seedAddress(t, gdb, owner.ID, "Lyon", true)
	token := tokenFor(t, owner.ID, "professional")

	resp, err := app.Test(jsonRequest("POST", "/addresses/", token, map[string]interface{}{
		"street_address": "2 place Bellecour",
		"city":           "Paris",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var primary models.Address
	assert.NoError(t, gdb.Where("profile_id = ? AND is_primary = ?", owner.ID, true).
		First(&primary).Error)
	assert.Equal(t, "Lyon", primary.City)
}

func TestCreateAddressRequiresStreetAndCity(t *testing.T) {
	gdb := setupTestDB(t)
	app := addressApp()

	owner := seedProfile(t, gdb, models.UserTypeProfessional, "Sophrologie")
	token := tokenFor(t, owner.ID, "professional")

	resp, err := app.Test(jsonRequest("POST", "/addresses/", token, map[string]interface{}{
		"city": "Paris",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	assert.NoError(t, gdb.Model(&models.Address{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
