package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address belongs to exactly one professional profile. At most one address
// per profile carries IsPrimary; SetPrimary keeps that invariant inside a
// single transaction.
type Address struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID     uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	IsPrimary     bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SetPrimary marks the address primary and unsets every other primary of the
// same profile in one transaction.
func (a *Address) SetPrimary(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Address{}).
			Where("profile_id = ? AND id <> ? AND is_primary = ?", a.ProfileID, a.ID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		a.IsPrimary = true
		return tx.Model(a).Update("is_primary", true).Error
	})
}

// MainAddress returns the primary address of a profile, falling back to any
// address. gorm.ErrRecordNotFound signals the profile has no address at all.
func MainAddress(db *gorm.DB, profileID uuid.UUID) (*Address, error) {
	var address Address
	err := db.Where("profile_id = ? AND is_primary = ?", profileID, true).
		First(&address).Error
	if err == nil {
		return &address, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := db.Where("profile_id = ?", profileID).
		Order("created_at").First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}
