package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an offering in a professional's catalog. Duration stays free
// text ("45 min", "1h30") rather than a structured duration.
type Service struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfessionalID uuid.UUID `json:"professional_id" gorm:"type:uuid;not null;index"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Duration       string    `json:"duration"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Professional *Profile `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Price < 0 {
		return fmt.Errorf("service price cannot be negative")
	}
	return nil
}
