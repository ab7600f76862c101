package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bba-git/bisousbisousmvp/utils"
)

type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeProfessional UserType = "professional"
)

// Profile is a marketplace account. Clients book appointments; professionals
// additionally carry a profession, a service catalog, addresses and
// availability. A single table covers both sides, selected by UserType.
type Profile struct {
	ID                 uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	NormalizedLastName string        `json:"normalized_last_name,omitempty" gorm:"index"`
	Email              string        `json:"email" gorm:"unique"`
	Password           string        `json:"password,omitempty"`
	Phone              string        `json:"phone"`
	UserType           UserType      `json:"user_type" gorm:"type:varchar(16);index"`
	Profession         string        `json:"profession,omitempty"`
	Description        string        `json:"description,omitempty"`
	Specialties        StringList    `json:"specialties,omitempty" gorm:"type:jsonb"`
	Availability       *Availability `json:"availability,omitempty" gorm:"type:jsonb"`
	WorkingHours       *WorkingHours `json:"working_hours,omitempty" gorm:"type:jsonb"`
	Location           string        `json:"location,omitempty"`
	PostalCode         string        `json:"postal_code,omitempty"`
	Verified           bool          `json:"verified" gorm:"default:false"`
	ProfilePicture     string        `json:"profile_picture,omitempty"`
	CompanyName        string        `json:"company_name,omitempty"`
	Siret              string        `json:"siret,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:ProfileID"`
	Services  []Service `json:"services,omitempty" gorm:"foreignKey:ProfessionalID"`
}

func (p *Profile) BeforeSave(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	// Search matches against the accent-stripped lowercase last name.
	p.NormalizedLastName = utils.NormalizeString(p.LastName)
	return nil
}

// IsProfessional reports whether the profile can own services and receive
// appointments.
func (p *Profile) IsProfessional() bool {
	return p.UserType == UserTypeProfessional
}

// ApplyDefaults backfills availability and working hours so a profile is
// always presentable, even when the professional never configured them.
func (p *Profile) ApplyDefaults() {
	if p.Availability == nil {
		a := DefaultAvailability()
		p.Availability = &a
	}
	if p.WorkingHours == nil {
		w := DefaultWorkingHours()
		p.WorkingHours = &w
	}
}

// Sanitize strips credentials before the profile is written to a response.
func (p *Profile) Sanitize() {
	p.Password = ""
}
