package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is the tenant unit: every group, table, design and asset hangs off one
// event, and every organizer-facing operation is scoped by OwnerID.
type Event struct {
	gorm.Model
	OwnerID  uint        `json:"owner_id" gorm:"index"`
	Owner    User        `json:"-" gorm:"foreignKey:OwnerID"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug" gorm:"uniqueIndex"`
	Date     time.Time   `json:"date"`
	Premium  bool        `json:"premium"`
	Settings SettingsMap `json:"settings" gorm:"serializer:json"`

	Groups []GuestGroup `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tables []Table      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Design *Design      `json:"design,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// SettingsMap holds per-event free-form content values (couple names, venue,
// countdown target). Updates merge key by key, they never replace the map.
type SettingsMap map[string]string

// Design picks the rendering template for the public invitation page.
// TemplateName is resolved against the compiled template registry; unknown
// names fall back to the placeholder template.
type Design struct {
	gorm.Model
	EventID      uint           `json:"event_id" gorm:"uniqueIndex"`
	TemplateName string         `json:"template_name"`
	Config       map[string]any `json:"config" gorm:"serializer:json"`
}
