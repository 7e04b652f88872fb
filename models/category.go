package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCategory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_category_name,priority:1,where:deleted_at IS NULL"`

	Name         string `gorm:"not null;uniqueIndex:idx_clinic_category_name,priority:2"`
	Description  string
	Color        string `gorm:"type:varchar(7);default:'#607D8B'"` // #RRGGBB
	DisplayOrder int    `gorm:"default:0"`
	ServiceCount int    `gorm:"default:0"`
	IsActive     bool   `gorm:"default:true"`

	Services []Service `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

func (sc *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return
}
