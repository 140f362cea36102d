package models

import (
	"gorm.io/gorm"
)

// Table is a seating container. Capacity is advisory: the UI shows occupancy
// against it but assignment never hard-fails on a full table.
type Table struct {
	gorm.Model
	EventID  uint   `json:"event_id" gorm:"index"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`

	Members []GuestMember `json:"members,omitempty" gorm:"foreignKey:TableID;constraint:OnDelete:SET NULL"`
}
