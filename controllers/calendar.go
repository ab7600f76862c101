package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/gcal"
	"github.com/bba-git/bisousbisousmvp/models"
)

// ConnectCalendar starts the OAuth flow for the caller's Google Calendar.
func ConnectCalendar(c *fiber.Ctx) error {
	cfg := gcal.Config()
	if cfg == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Google Calendar not configured",
		})
	}

	userID := c.Locals("userID").(uuid.UUID)
	state := fmt.Sprintf("%s_%d", userID, time.Now().Unix())

	return c.JSON(fiber.Map{
		"auth_url": cfg.AuthCodeURL(state, oauth2.AccessTypeOffline),
		"state":    state,
	})
}

// CalendarCallback finishes the OAuth flow: the authorization code is traded
// for a token tuple and stored for the professional.
func CalendarCallback(c *fiber.Ctx) error {
	cfg := gcal.Config()
	if cfg == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Google Calendar not configured",
		})
	}

	userID := c.Locals("userID").(uuid.UUID)

	type CallbackInput struct {
		Code string `json:"code"`
	}
	input := new(CallbackInput)
	if err := c.BodyParser(input); err != nil || input.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization code required",
		})
	}

	cred := models.CalendarCredential{ProfessionalID: userID}
	if err := db.DB.First(&cred, "professional_id = ?", userID).Error; err != nil && err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load calendar credential",
		})
	}

	if err := gcal.Exchange(c.Context(), cfg, input.Code, &cred); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to exchange code for token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Calendar connected successfully",
	})
}

// loadCredential fetches the caller's calendar credential. A nil credential
// with a nil error means the calendar was never connected.
func loadCredential(userID uuid.UUID) (*models.CalendarCredential, error) {
	var cred models.CalendarCredential
	err := db.DB.First(&cred, "professional_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// ListCalendarEvents returns the caller's calendar events within the
// requested window, defaulting to the coming week.
func ListCalendarEvents(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	cred, err := loadCredential(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load calendar credential",
		})
	}
	if cred == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Calendar not integrated",
		})
	}

	timeMin := time.Now()
	timeMax := timeMin.AddDate(0, 0, 7)
	if v := c.Query("timeMin"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "timeMin must be RFC3339",
			})
		}
		timeMin = t
	}
	if v := c.Query("timeMax"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "timeMax must be RFC3339",
			})
		}
		timeMax = t
	}

	events, err := gcal.ListEvents(c.Context(), cred, timeMin, timeMax)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve events",
		})
	}
	if events == nil {
		events = []gcal.Event{}
	}

	return c.JSON(fiber.Map{
		"events": events,
		"count":  len(events),
	})
}

// CreateCalendarEvent adds an event to the caller's calendar.
func CreateCalendarEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	cred, err := loadCredential(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load calendar credential",
		})
	}
	if cred == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Calendar not integrated",
		})
	}

	type EventInput struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Start       time.Time `json:"start"`
		End         time.Time `json:"end"`
	}
	input := new(EventInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Title == "" || input.Start.IsZero() || input.End.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title, start and end are required",
		})
	}

	event, err := gcal.InsertEvent(c.Context(), cred, input.Title, input.Description, input.Start, input.End)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create calendar event",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"event": event,
	})
}
