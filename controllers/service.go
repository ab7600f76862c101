package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// GetProfessionalServices lists a professional's catalog. A query failure
// degrades to an empty list: the catalog must never block a profile view.
func GetProfessionalServices(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Professional not found",
		})
	}

	var services []models.Service
	if err := db.DB.Where("professional_id = ?", id).Find(&services).Error; err != nil {
		log.Printf("Error fetching services for %s: %v", id, err)
		services = nil
	}
	if services == nil {
		services = []models.Service{}
	}

	return c.JSON(services)
}

// CreateService adds an offering to the caller's catalog.
func CreateService(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var service models.Service
	if err := c.BodyParser(&service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if service.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if service.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price cannot be negative",
		})
	}

	service.ID = uuid.Nil
	service.ProfessionalID = userID

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService edits one of the caller's services.
func UpdateService(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if service.ProfessionalID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't own this service",
		})
	}

	var input models.Service
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price cannot be negative",
		})
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"price":       input.Price,
		"duration":    input.Duration,
	}
	if err := db.DB.Model(&service).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update service",
			Error:   err.Error(),
		})
	}

	return c.JSON(service)
}

// DeleteService removes one of the caller's services.
func DeleteService(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	result := db.DB.Where("id = ? AND professional_id = ?", id, userID).Delete(&models.Service{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SearchServices matches titles and descriptions, case-insensitively.
func SearchServices(c *fiber.Ctx) error {
	query := c.Query("q")

	var services []models.Service
	tx := db.DB.Preload("Professional")
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if err := tx.Order("title").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to perform search",
			Error:   err.Error(),
		})
	}

	for i := range services {
		if services[i].Professional != nil {
			services[i].Professional.Sanitize()
		}
	}

	return c.JSON(services)
}
