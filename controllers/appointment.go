package controllers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/gcal"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// AppointmentInput is the booking request body.
type AppointmentInput struct {
	ProfessionalID  string `json:"professional_id"`
	Motivation      string `json:"motivation"`
	AppointmentDate string `json:"appointment_date"`
}

// Validate checks the required fields and parses the date. It runs before
// any storage access so a bad request never costs a round-trip.
func (in *AppointmentInput) Validate() (uuid.UUID, time.Time, error) {
	if in.ProfessionalID == "" || in.Motivation == "" || in.AppointmentDate == "" {
		return uuid.Nil, time.Time{}, fmt.Errorf("missing required fields")
	}
	professionalID, err := uuid.Parse(in.ProfessionalID)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("invalid professional_id")
	}
	date, err := parseAppointmentDate(in.AppointmentDate)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("invalid appointment_date")
	}
	return professionalID, date, nil
}

func parseAppointmentDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// CreateAppointment records a pending booking from the authenticated client.
// The target professional must exist; no overlap checking is performed
// against their other appointments. Notification mail and the calendar event
// are best-effort: their failure never fails the booking.
func CreateAppointment(c *fiber.Ctx) error {
	clientID := c.Locals("userID").(uuid.UUID)

	input := new(AppointmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	professionalID, date, err := input.Validate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var professional models.Profile
	if err := db.DB.
		Where("id = ? AND user_type = ?", professionalID, models.UserTypeProfessional).
		First(&professional).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Professional not found",
		})
	}

	appointment := models.Appointment{
		ClientID:        clientID,
		ProfessionalID:  professionalID,
		Motivation:      input.Motivation,
		AppointmentDate: date,
		Status:          models.StatusPending,
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		log.Printf("Appointment creation error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create appointment",
		})
	}

	go notifyBookingParties(appointment.ID, clientID, professional)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// notifyBookingParties sends the booking mails and mirrors the appointment
// onto the professional's calendar when one is connected. Runs detached;
// every failure is logged and dropped.
func notifyBookingParties(appointmentID, clientID uuid.UUID, professional models.Profile) {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		log.Printf("Failed to reload appointment %s: %v", appointmentID, err)
		return
	}
	var client models.Profile
	if err := db.DB.First(&client, "id = ?", clientID).Error; err != nil {
		log.Printf("Failed to load client %s: %v", clientID, err)
		return
	}

	date := utils.ToParis(appointment.AppointmentDate)
	clientName := client.FirstName + " " + client.LastName
	professionalName := professional.FirstName + " " + professional.LastName

	if err := utils.SendEmail(client.Email, "Demande de rendez-vous enregistrée",
		utils.BookingCreatedBody(clientName, professionalName, professional.Profession, date)); err != nil {
		log.Printf("Failed to send booking mail to client %s: %v", client.Email, err)
	}
	if err := utils.SendEmail(professional.Email, "Nouvelle demande de rendez-vous",
		utils.BookingReceivedBody(professionalName, clientName, appointment.Motivation, date)); err != nil {
		log.Printf("Failed to send booking mail to professional %s: %v", professional.Email, err)
	}

	var cred models.CalendarCredential
	if err := db.DB.First(&cred, "professional_id = ?", professional.ID).Error; err != nil {
		return // no calendar connected
	}
	summary := fmt.Sprintf("Rendez-vous : %s", clientName)
	if _, err := gcal.InsertEvent(context.Background(), &cred, summary,
		appointment.Motivation, appointment.AppointmentDate,
		appointment.AppointmentDate.Add(time.Hour)); err != nil {
		log.Printf("Failed to create calendar event for %s: %v", professional.ID, err)
	}
}

// customerAppointment joins the counterpart's display fields onto each
// appointment row.
type customerAppointment struct {
	models.Appointment
	ProfessionalInfo struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Profession string `json:"profession"`
	} `json:"professional"`
}

// ListCustomerAppointments returns a client's own appointments, ascending by
// date. Requesting another client's list is forbidden, checked before any
// data is touched.
func ListCustomerAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil || id != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Professional").
		Where("client_id = ?", id).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	result := make([]customerAppointment, 0, len(appointments))
	for _, a := range appointments {
		row := customerAppointment{Appointment: a}
		if a.Professional != nil {
			row.ProfessionalInfo.FirstName = a.Professional.FirstName
			row.ProfessionalInfo.LastName = a.Professional.LastName
			row.ProfessionalInfo.Profession = a.Professional.Profession
		}
		row.Professional = nil
		row.Client = nil
		result = append(result, row)
	}

	return c.JSON(result)
}

// ResumeBookingState decodes the form state carried through a login redirect
// so the booking page can restore its fields.
func ResumeBookingState(c *fiber.Ctx) error {
	token := c.Query("state")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "State token is required",
		})
	}

	state, err := utils.DecodeBookingState(token)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid state token",
		})
	}

	return c.JSON(state)
}

// UpdateAppointmentStatus moves a booking through its lifecycle. The
// professional may confirm or cancel; the client may only cancel.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	type StatusInput struct {
		Status models.AppointmentStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	switch userID {
	case appointment.ProfessionalID:
		// professionals may confirm or cancel
	case appointment.ClientID:
		if input.Status != models.StatusCancelled {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Clients may only cancel their appointments",
			})
		}
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}

	if err := appointment.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(appointment)
}
