package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// ProfileUpdateInput covers the fields a profile owner may edit. Pointer
// fields distinguish "leave unchanged" from "clear".
type ProfileUpdateInput struct {
	FirstName    *string              `json:"first_name"`
	LastName     *string              `json:"last_name"`
	Phone        *string              `json:"phone"`
	Description  *string              `json:"description"`
	Profession   *string              `json:"profession"`
	Location     *string              `json:"location"`
	PostalCode   *string              `json:"postal_code"`
	Specialties  *models.StringList   `json:"specialties"`
	Availability *models.Availability `json:"availability"`
	WorkingHours *models.WorkingHours `json:"working_hours"`
}

// UpdateMyProfile applies a partial update to the caller's profile.
func UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	input := new(ProfileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var profile models.Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}
	if input.Profession != nil {
		profile.Profession = *input.Profession
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}
	if input.PostalCode != nil {
		profile.PostalCode = *input.PostalCode
	}
	if input.Specialties != nil {
		profile.Specialties = *input.Specialties
	}
	if input.Availability != nil {
		profile.Availability = input.Availability
	}
	if input.WorkingHours != nil {
		profile.WorkingHours = input.WorkingHours
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	profile.Sanitize()
	return c.JSON(profile)
}

// UpdateProfilePicture uploads a new profile picture and stores its URL.
func UpdateProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get profile picture",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open profile picture",
		})
	}
	defer f.Close()

	publicID := fmt.Sprintf("profile_%s_%d", userID, time.Now().Unix())
	secureURL, err := utils.UploadProfilePicture(f, publicID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload profile picture",
		})
	}

	if err := db.DB.Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("profile_picture", secureURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile picture",
		})
	}

	return c.JSON(fiber.Map{
		"profile_picture": secureURL,
	})
}
