package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type Clinic struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name                  string    `gorm:"not null"`
	Address               string
	Phone                 string
	Email                 string
	WorkingHours          JSONB     `gorm:"type:jsonb;default:'{}'"`
	BirthdayReminders     bool      `gorm:"default:true"`
	AppointmentReminders  bool      `gorm:"default:true"`
	WhatsAppNotifications bool      `gorm:"default:false"`
	SMSNotifications      bool      `gorm:"default:false"`

	Users             []User             `gorm:"foreignKey:ClinicID"`
	Patients          []Patient          `gorm:"foreignKey:ClinicID"`
	ServiceCategories []ServiceCategory  `gorm:"foreignKey:ClinicID"`
	Appointments      []Appointment      `gorm:"foreignKey:ClinicID"`
	ReminderTemplates []ReminderTemplate `gorm:"foreignKey:ClinicID"`
}

// Custom JSONB type for working hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
