package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow_up"
	TypeProcedure    AppointmentType = "procedure"
	TypeEmergency    AppointmentType = "emergency"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeConsultation, TypeFollowUp, TypeProcedure, TypeEmergency:
		return true
	}
	return false
}

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	BookingNumber string    `gorm:"uniqueIndex;not null"`
	PatientID     uuid.UUID `gorm:"type:uuid;index;not null"`
	DoctorID      uuid.UUID `gorm:"type:uuid;index;not null"`

	StartsAt     time.Time         `gorm:"not null;index"`
	DurationMins int               `gorm:"not null;default:30"`
	Type         AppointmentType   `gorm:"type:varchar(20);not null"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`

	Reason string `gorm:"type:text"`
	Notes  string `gorm:"type:text"`

	// Payment breakdown; amount_paid + amount_pending must equal total_cost
	TotalCost     float64 `gorm:"type:decimal(10,2);default:0.0"`
	AmountPaid    float64 `gorm:"type:decimal(10,2);default:0.0"`
	AmountPending float64 `gorm:"type:decimal(10,2);default:0.0"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
