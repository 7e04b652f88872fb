package models

import (
	"time"

	"clinicpro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

// User is the acting identity behind a bearer token. Doctors are users with
// role 'doctor'; the clinic owner registers as 'admin'.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role     string    `gorm:"type:varchar(20);not null"` // 'admin' or 'doctor'
	ClinicID uuid.UUID `gorm:"type:uuid;index;not null"`

	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`

	// Doctor profile
	Specialization  string
	Qualification   string
	ConsultationFee float64 `gorm:"type:decimal(10,2);default:0.0"`

	WorkingDays      []WorkingDay      `gorm:"foreignKey:DoctorID"`
	BreakTimes       []BreakTime       `gorm:"foreignKey:DoctorID"`
	UnavailableDates []UnavailableDate `gorm:"foreignKey:DoctorID"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
