package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// CreateServiceRequest records a loose booking: the client describes what
// they need, optionally naming a professional.
func CreateServiceRequest(c *fiber.Ctx) error {
	clientID := c.Locals("userID").(uuid.UUID)

	var request models.ServiceRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if request.ServiceType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service type is required",
		})
	}

	if request.ProfessionalID != nil {
		var professional models.Profile
		if err := db.DB.
			Where("id = ? AND user_type = ?", *request.ProfessionalID, models.UserTypeProfessional).
			First(&professional).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Professional not found",
			})
		}
	}

	request.ID = uuid.Nil
	request.ClientID = clientID
	request.Status = models.RequestPending

	if err := db.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service request",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// ListMyServiceRequests returns the caller's service requests, newest first.
func ListMyServiceRequests(c *fiber.Ctx) error {
	clientID := c.Locals("userID").(uuid.UUID)

	var requests []models.ServiceRequest
	if err := db.DB.Where("client_id = ?", clientID).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch service requests",
			Error:   err.Error(),
		})
	}

	return c.JSON(requests)
}
