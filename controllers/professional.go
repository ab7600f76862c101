package controllers

import (
	"log"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// GetProfessionalLanding resolves a professional profile from its public URL
// (/:profession/:location/:id). A missing profile or a profession segment
// that doesn't match reads as not found: guessing ids must not leak profiles
// under a wrong profession.
//
// Addresses and services are fetched concurrently; either failing degrades to
// an empty list rather than blocking the profile display.
func GetProfessionalLanding(c *fiber.Ctx) error {
	profession := c.Params("profession")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Professionnel non trouvé",
		})
	}

	var professional models.Profile
	if err := db.DB.First(&professional, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Professionnel non trouvé",
		})
	}

	if !professional.IsProfessional() || !strings.EqualFold(professional.Profession, profession) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Professionnel non trouvé",
		})
	}

	professional.ApplyDefaults()
	professional.Sanitize()

	var (
		wg        sync.WaitGroup
		addresses []models.Address
		services  []models.Service
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := db.DB.Where("profile_id = ?", id).
			Order("is_primary DESC").Find(&addresses).Error; err != nil {
			log.Printf("Error fetching addresses for %s: %v", id, err)
			addresses = nil
		}
	}()
	go func() {
		defer wg.Done()
		if err := db.DB.Where("professional_id = ?", id).Find(&services).Error; err != nil {
			log.Printf("Error fetching services for %s: %v", id, err)
			services = nil
		}
	}()
	wg.Wait()

	if addresses == nil {
		addresses = []models.Address{}
	}
	if services == nil {
		services = []models.Service{}
	}

	return c.JSON(fiber.Map{
		"professional": professional,
		"addresses":    addresses,
		"services":     services,
	})
}

// GetMainAddress returns the primary address of a professional, falling back
// to any address they have.
func GetMainAddress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Professional not found",
		})
	}

	address, err := models.MainAddress(db.DB, id)
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No addresses found for this professional",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch address",
			Error:   err.Error(),
		})
	}

	return c.JSON(address)
}

// SearchProfessionals matches the accent-stripped last name.
func SearchProfessionals(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Last name is required",
		})
	}

	normalized := utils.NormalizeString(query)

	var professionals []models.Profile
	if err := db.DB.
		Where("user_type = ? AND normalized_last_name ILIKE ?",
			models.UserTypeProfessional, "%"+normalized+"%").
		Find(&professionals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search professionals",
			Error:   err.Error(),
		})
	}

	for i := range professionals {
		professionals[i].Sanitize()
	}

	return c.JSON(professionals)
}
