package controllers

import (
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/middleware"
	"github.com/bba-git/bisousbisousmvp/models"
)

// Register handles account creation for both clients and professionals
func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		FirstName  string          `json:"first_name"`
		LastName   string          `json:"last_name"`
		Email      string          `json:"email"`
		Password   string          `json:"password"`
		Phone      string          `json:"phone"`
		UserType   models.UserType `json:"user_type"`
		Profession string          `json:"profession"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if input.UserType == "" {
		input.UserType = models.UserTypeClient
	}
	if input.UserType != models.UserTypeClient && input.UserType != models.UserTypeProfessional {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user type",
		})
	}
	if input.UserType == models.UserTypeProfessional && input.Profession == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Profession is required for professionals",
		})
	}

	var existing models.Profile
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An account with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	profile := models.Profile{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Password:   string(hashedPassword),
		Phone:      input.Phone,
		UserType:   input.UserType,
		Profession: input.Profession,
	}

	if err := db.DB.Create(&profile).Error; err != nil {
		log.Printf("Error creating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	profile.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// Login authenticates a profile and issues an access/refresh token pair.
// When the caller arrived via the booking auth gate, the `redirect` and
// `state` query parameters are folded back into a resume_url so the client
// can return to the booking form it abandoned.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var profile models.Profile
	if db.DB.Where("email = ?", input.Email).First(&profile).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Email ou mot de passe incorrect",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Email ou mot de passe incorrect",
		})
	}

	secret := middleware.Secret()

	claims := jwt.MapClaims{
		"id":        profile.ID.String(),
		"email":     profile.Email,
		"user_type": string(profile.UserType),
		"exp":       time.Now().Add(time.Hour * 24).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	refreshClaims := jwt.MapClaims{
		"id":    profile.ID.String(),
		"email": profile.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	refreshTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	response := fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":         profile.ID,
			"first_name": profile.FirstName,
			"last_name":  profile.LastName,
			"email":      profile.Email,
			"user_type":  profile.UserType,
		},
	}

	if resumeURL := buildResumeURL(c.Query("redirect"), c.Query("state")); resumeURL != "" {
		response["resume_url"] = resumeURL
	}

	return c.JSON(response)
}

// buildResumeURL re-attaches the serialized booking state to the page the
// client was interrupted on. The state token travels untouched; the booking
// page decodes it on arrival.
func buildResumeURL(redirect, state string) string {
	if redirect == "" {
		return ""
	}
	u, err := url.Parse(redirect)
	if err != nil {
		return ""
	}
	if state != "" {
		q := u.Query()
		q.Set("state", state)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	secret := middleware.Secret()
	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	id, _ := claims["id"].(string)

	// The profile may have changed type since the refresh token was issued
	var profile models.Profile
	if err := db.DB.First(&profile, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Account no longer exists",
		})
	}

	newClaims := jwt.MapClaims{
		"id":        profile.ID.String(),
		"email":     profile.Email,
		"user_type": string(profile.UserType),
		"exp":       time.Now().Add(time.Hour * 24).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims).SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// Me returns the current profile
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var profile models.Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	profile.Sanitize()
	return c.JSON(profile)
}

// Logout doesn't invalidate the token as JWTs are stateless
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// DeleteAccount removes the profile and everything it owns: addresses,
// services, calendar credentials and service requests. Appointments are kept
// for the counterpart's history.
func DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", userID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		if err := tx.Where("professional_id = ?", userID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("professional_id = ?", userID).Delete(&models.CalendarCredential{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", userID).Delete(&models.ServiceRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, "id = ?", userID).Error
	})
	if err != nil {
		log.Printf("Error deleting account %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}
