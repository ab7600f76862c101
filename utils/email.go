package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// BookingCreatedBody builds the notification mail sent to the client after
// their appointment request is recorded.
func BookingCreatedBody(clientName, professionalName, profession string, date time.Time) string {
	return fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Votre demande de rendez-vous a bien été enregistrée.</p>
		<ul>
			<li><strong>Professionnel :</strong> %s (%s)</li>
			<li><strong>Date :</strong> %s</li>
			<li><strong>Statut :</strong> en attente de confirmation</li>
		</ul>
		<p>L'équipe BisousBisous</p>
	`, clientName, professionalName, profession, date.Format("02/01/2006 15:04"))
}

// BookingReceivedBody builds the notification mail sent to the professional.
func BookingReceivedBody(professionalName, clientName, motivation string, date time.Time) string {
	return fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Vous avez reçu une nouvelle demande de rendez-vous.</p>
		<ul>
			<li><strong>Client :</strong> %s</li>
			<li><strong>Motif :</strong> %s</li>
			<li><strong>Date :</strong> %s</li>
		</ul>
		<p>Connectez-vous pour confirmer ou refuser.</p>
		<p>L'équipe BisousBisous</p>
	`, professionalName, clientName, motivation, date.Format("02/01/2006 15:04"))
}

// ReminderBody builds the one-hour-before reminder mail for the client.
func ReminderBody(clientName, professionalName string, date time.Time) string {
	return fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Petit rappel : votre rendez-vous avec %s a lieu dans une heure, le %s.</p>
		<p>L'équipe BisousBisous</p>
	`, clientName, professionalName, date.Format("02/01/2006 à 15:04"))
}
