package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ClinicID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_phone,priority:1,where:deleted_at IS NULL"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Phone    string `gorm:"not null;uniqueIndex:idx_clinic_phone,priority:2"`
	Email    string
	Gender   string `gorm:"type:varchar(10)"`
	Birthday *time.Time

	BloodGroup     string `gorm:"type:varchar(5)"`
	Allergies      string `gorm:"type:text"`
	MedicalHistory string `gorm:"type:text"`
	Notes          string

	TotalVisits int     `gorm:"default:0"`
	TotalSpent  float64 `gorm:"type:decimal(10,2);default:0.0"`
	LastVisit   *time.Time
	IsActive    bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:PatientID"`

	gorm.Model
}
