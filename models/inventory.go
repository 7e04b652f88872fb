package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Medicine struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	GenericName string
	BatchNumber string
	ExpiryDate  *time.Time
	Unit        string `gorm:"type:varchar(20);default:'tablet'"`

	Stock        int     `gorm:"default:0"` // never negative
	ReorderLevel int     `gorm:"default:10"`
	UnitPrice    float64 `gorm:"type:decimal(10,2);default:0.0"`
	IsActive     bool    `gorm:"default:true"`

	gorm.Model
}

func (m *Medicine) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

type ImplantMaterial struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name         string `gorm:"not null"`
	Manufacturer string
	Size         string `gorm:"type:varchar(40)"`
	Material     string `gorm:"type:varchar(40)"`

	Stock        int     `gorm:"default:0"`
	ReorderLevel int     `gorm:"default:5"`
	UnitCost     float64 `gorm:"type:decimal(10,2);default:0.0"`
	IsActive     bool    `gorm:"default:true"`

	gorm.Model
}

func (m *ImplantMaterial) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// StockAdjustment is an audit row written for every manual stock change
type StockAdjustment struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID         uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemType         string    `gorm:"type:varchar(20);not null"` // medicine, implant_material
	ItemID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Delta            int       `gorm:"not null"`
	ResultingStock   int       `gorm:"not null"`
	Reason           string    `gorm:"type:text"`
	AdjustedByUserID uuid.UUID `gorm:"type:uuid;not null"`

	gorm.Model
}

func (s *StockAdjustment) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
