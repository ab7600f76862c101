package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openAddressDB(t *testing.T) *gorm.DB {
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
	if err := gdb.AutoMigrate(&Address{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return gdb
}

func seedAddress(t *testing.T, gdb *gorm.DB, profileID uuid.UUID, city string) *Address {
	t.Helper()
	a := Address{ProfileID: profileID, StreetAddress: "1 rue de la Paix", City: city}
	if err := gdb.Create(&a).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return &a
}

func countPrimaries(t *testing.T, gdb *gorm.DB, profileID uuid.UUID) int64 {
	t.Helper()
	var n int64
	err := gdb.Model(&Address{}).
		Where("profile_id = ? AND is_primary = ?", profileID, true).Count(&n).Error
	assert.NoError(t, err)
	return n
}

func TestSetPrimaryKeepsExactlyOnePrimary(t *testing.T) {
	gdb := openAddressDB(t)
	profileID := uuid.New()

	first := seedAddress(t, gdb, profileID, "Paris")
	second := seedAddress(t, gdb, profileID, "Lyon")
	third := seedAddress(t, gdb, profileID, "Nice")

	assert.NoError(t, first.SetPrimary(gdb))
	assert.EqualValues(t, 1, countPrimaries(t, gdb, profileID))

	assert.NoError(t, second.SetPrimary(gdb))
	assert.EqualValues(t, 1, countPrimaries(t, gdb, profileID))

	assert.NoError(t, third.SetPrimary(gdb))
	assert.EqualValues(t, 1, countPrimaries(t, gdb, profileID))

	var primary Address
	assert.NoError(t, gdb.Where("profile_id = ? AND is_primary = ?", profileID, true).
		First(&primary).Error)
	assert.Equal(t, third.ID, primary.ID)
}

func TestSetPrimaryDoesNotTouchOtherProfiles(t *testing.T) {
	gdb := openAddressDB(t)
	mine := uuid.New()
	theirs := uuid.New()

	other := seedAddress(t, gdb, theirs, "Marseille")
	assert.NoError(t, other.SetPrimary(gdb))

	a := seedAddress(t, gdb, mine, "Paris")
	assert.NoError(t, a.SetPrimary(gdb))

	assert.EqualValues(t, 1, countPrimaries(t, gdb, theirs))
	assert.EqualValues(t, 1, countPrimaries(t, gdb, mine))
}

func TestMainAddressPrefersPrimary(t *testing.T) {
	gdb := openAddressDB(t)
	profileID := uuid.New()

	seedAddress(t, gdb, profileID, "Paris")
	primary := seedAddress(t, gdb, profileID, "Lyon")
	assert.NoError(t, primary.SetPrimary(gdb))

	got, err := MainAddress(gdb, profileID)
	assert.NoError(t, err)
	assert.Equal(t, primary.ID, got.ID)
}

func TestMainAddressFallsBackWithoutPrimary(t *testing.T) {
	gdb := openAddressDB(t)
	profileID := uuid.New()

	only := seedAddress(t, gdb, profileID, "Paris")

	got, err := MainAddress(gdb, profileID)
	assert.NoError(t, err)
	assert.Equal(t, only.ID, got.ID)
}

func TestMainAddressWithoutAnyAddress(t *testing.T) {
	gdb := openAddressDB(t)

	_, err := MainAddress(gdb, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
