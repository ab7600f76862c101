package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// ListMyAddresses returns the caller's addresses, primary first.
func ListMyAddresses(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var addresses []models.Address
	if err := db.DB.Where("profile_id = ?", userID).
		Order("is_primary DESC, created_at").Find(&addresses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch addresses",
			Error:   err.Error(),
		})
	}

	return c.JSON(addresses)
}

// CreateAddress adds an address for the caller. Marking it primary demotes
// any existing primary in the same transaction.
func CreateAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if address.StreetAddress == "" || address.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Street address and city are required",
		})
	}

	address.ID = uuid.Nil
	address.ProfileID = userID
	wantPrimary := address.IsPrimary
	address.IsPrimary = false

	// Creation and the primary handoff commit together; a failed handoff
	// must not leave a stray non-primary row behind.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		if wantPrimary {
			return address.SetPrimary(tx)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create address",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(address)
}

// UpdateAddress edits one of the caller's addresses.
func UpdateAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	var address models.Address
	if err := db.DB.First(&address, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}
	if address.ProfileID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't own this address",
		})
	}

	var input models.Address
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{
		"street_address": input.StreetAddress,
		"city":           input.City,
		"postal_code":    input.PostalCode,
		"country":        input.Country,
	}
	if err := db.DB.Model(&address).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update address",
			Error:   err.Error(),
		})
	}

	if input.IsPrimary && !address.IsPrimary {
		if err := address.SetPrimary(db.DB); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to set primary address",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(address)
}

// DeleteAddress removes one of the caller's addresses.
func DeleteAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	result := db.DB.Where("id = ? AND profile_id = ?", id, userID).Delete(&models.Address{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete address",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
