package db

import (
	"fmt"
	"log"

	"github.com/bba-git/bisousbisousmvp/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Profile{},
		&models.Address{},
		&models.Service{},
		&models.Appointment{},
		&models.ServiceRequest{},
		&models.CalendarCredential{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
