package controllers_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
)

// setupTestDB points the shared connection at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = gdb.AutoMigrate(
		&models.Profile{},
		&models.Address{},
		&models.Service{},
		&models.Appointment{},
		&models.ServiceRequest{},
		&models.CalendarCredential{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db.DB = gdb
	return gdb
}

func seedProfile(t *testing.T, gdb *gorm.DB, userType models.UserType, profession string) models.Profile {
	t.Helper()
	p := models.Profile{
		FirstName:  "Claire",
		LastName:   "Moreau",
		Email:      uuid.NewString() + "@example.com",
		Password:   "hashed",
		UserType:   userType,
		Profession: profession,
	}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func seedAddress(t *testing.T, gdb *gorm.DB, profileID uuid.UUID, city string, primary bool) models.Address {
	t.Helper()
	a := models.Address{
		ProfileID:     profileID,
		StreetAddress: "1 rue de la Paix",
		City:          city,
		IsPrimary:     primary,
	}
	if err := gdb.Create(&a).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return a
}

func countPrimaries(t *testing.T, gdb *gorm.DB, profileID uuid.UUID) int64 {
	t.Helper()
	var n int64
	err := gdb.Model(&models.Address{}).
		Where("profile_id = ? AND is_primary = ?", profileID, true).Count(&n).Error
	assert.NoError(t, err)
	return n
}
