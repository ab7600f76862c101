package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRequestStatus string

const (
	RequestPending   ServiceRequestStatus = "pending"
	RequestAccepted  ServiceRequestStatus = "accepted"
	RequestCompleted ServiceRequestStatus = "completed"
	RequestCancelled ServiceRequestStatus = "cancelled"
)

// ServiceRequest is the loose booking path: a client describes what they
// need without necessarily targeting a professional. Kept separate from
// Appointment, which remains the canonical booking record.
type ServiceRequest struct {
	ID             uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID       uuid.UUID            `json:"client_id" gorm:"type:uuid;not null;index"`
	ProfessionalID *uuid.UUID           `json:"professional_id,omitempty" gorm:"type:uuid;index"`
	ServiceType    string               `json:"service_type"`
	PreferredDate  string               `json:"preferred_date"`
	PreferredTime  string               `json:"preferred_time"`
	Location       string               `json:"location"`
	Description    string               `json:"description"`
	Status         ServiceRequestStatus `json:"status" gorm:"type:varchar(16);index"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RequestPending
	}
	return nil
}
