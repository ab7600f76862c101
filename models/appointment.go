package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is the canonical booking record: a client asks a professional
// for a slot, with a free-text motivation. It starts pending; the
// professional confirms or either side cancels.
type Appointment struct {
	ID              uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID         `json:"client_id" gorm:"type:uuid;not null;index"`
	ProfessionalID  uuid.UUID         `json:"professional_id" gorm:"type:uuid;not null;index"`
	Motivation      string            `json:"motivation"`
	AppointmentDate time.Time         `json:"appointment_date" gorm:"index"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(16);index"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Client       *Profile `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Professional *Profile `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether moving from one status to another is allowed.
// Cancelled is terminal; confirmed can only be cancelled.
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// UpdateStatus validates the transition and persists the new status.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !CanTransition(a.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}
	a.Status = newStatus
	return tx.Model(a).Update("status", newStatus).Error
}
