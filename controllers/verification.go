package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/redis"
	"github.com/bba-git/bisousbisousmvp/sirene"
)

const sireneCacheTTL = 24 * time.Hour

// lookupCompany hits the SIRENE registry, reading through the redis cache.
// Registry records change rarely; a day of staleness is acceptable.
func lookupCompany(c *fiber.Ctx, siret string) (*sirene.Company, error) {
	cacheKey := "sirene:" + siret
	if cached := redis.Get(cacheKey); cached != "" {
		var company sirene.Company
		if err := json.Unmarshal([]byte(cached), &company); err == nil {
			return &company, nil
		}
	}

	company, err := sirene.NewClient().Lookup(c.Context(), siret)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(company); err == nil {
		redis.Set(cacheKey, string(data), sireneCacheTTL)
	}
	return company, nil
}

// GetCompanyBySiret exposes the registry lookup used by the onboarding form.
func GetCompanyBySiret(c *fiber.Ctx) error {
	siret := c.Query("siret")
	if siret == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "SIRET number is required",
		})
	}
	if !sirene.IsValidSiret(siret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid SIRET format. Must be 14 digits.",
		})
	}

	company, err := lookupCompany(c, siret)
	if err == sirene.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No company found for this SIRET",
		})
	}
	if err != nil {
		log.Printf("SIRENE lookup failed for %s: %v", siret, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SIRENE data",
		})
	}

	return c.JSON(company)
}

// VerifyProfessional checks the caller's SIRET against the registry, marks
// the profile verified and records the company identity. When the
// professional has no address yet, the registered company address becomes
// their primary one.
func VerifyProfessional(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	type VerifyInput struct {
		Siret string `json:"siret"`
	}
	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if !sirene.IsValidSiret(input.Siret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid SIRET format. Must be 14 digits.",
		})
	}

	company, err := lookupCompany(c, input.Siret)
	if err == sirene.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No company found for this SIRET",
		})
	}
	if err != nil {
		log.Printf("SIRENE lookup failed for %s: %v", input.Siret, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SIRENE data",
		})
	}
	if !company.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This establishment is no longer active",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"verified":     true,
			"company_name": company.CompanyName,
			"siret":        company.Siret,
		}
		if err := tx.Model(&models.Profile{}).
			Where("id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Address{}).
			Where("profile_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address := models.Address{
				ProfileID:     userID,
				StreetAddress: company.Address.Street,
				City:          company.Address.City,
				PostalCode:    company.Address.PostalCode,
				Country:       company.Address.Country,
				IsPrimary:     true,
			}
			return tx.Create(&address).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Verification update failed for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record verification",
		})
	}

	return c.JSON(fiber.Map{
		"verified": true,
		"company":  company,
	})
}

// CheckVerification reports whether the caller's profile is verified.
func CheckVerification(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var profile models.Profile
	if err := db.DB.Select("verified", "company_name", "siret").
		First(&profile, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	return c.JSON(fiber.Map{
		"verified":     profile.Verified,
		"company_name": profile.CompanyName,
		"siret":        profile.Siret,
	})
}
