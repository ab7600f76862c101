package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
	"github.com/bba-git/bisousbisousmvp/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders mails clients whose confirmed appointment starts
// in about an hour.
func sendAppointmentReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var appointments []models.Appointment
	err := db.DB.Preload("Client").Preload("Professional").
		Where("status = ? AND appointment_date BETWEEN ? AND ?",
			models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Client == nil || appointment.Professional == nil {
			continue
		}
		clientName := appointment.Client.FirstName + " " + appointment.Client.LastName
		professionalName := appointment.Professional.FirstName + " " + appointment.Professional.LastName
		body := utils.ReminderBody(clientName, professionalName, utils.ToParis(appointment.AppointmentDate))

		if err := utils.SendEmail(appointment.Client.Email, "Rappel : rendez-vous dans une heure", body); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %s to %s", appointment.ID, appointment.Client.Email)
	}
}
