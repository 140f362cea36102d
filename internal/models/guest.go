package models

import (
	"gorm.io/gorm"
)

type GroupStatus string

const (
	GroupStatusPending   GroupStatus = "pending"
	GroupStatusConfirmed GroupStatus = "confirmed"
	GroupStatusPartial   GroupStatus = "partial"
	GroupStatusDeclined  GroupStatus = "declined"
)

// GuestGroup is one invited party (family/couple) sharing a QR code. Slug is
// the only identifier ever printed on a QR code; numeric IDs stay internal.
//
// IsCheckedIn is a denormalized projection of CheckInLogs: it must always
// equal "the most recent log is an entry". Both are written inside one
// transaction in the check-in toggle, never independently.
type GuestGroup struct {
	gorm.Model
	EventID      uint        `json:"event_id" gorm:"index"`
	GroupName    string      `json:"group_name"`
	Slug         string      `json:"slug" gorm:"uniqueIndex"`
	TotalPasses  int         `json:"total_passes"`
	Status       GroupStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
	IsCheckedIn  bool        `json:"is_checked_in"`
	ContactName  string      `json:"contact_name"`
	ContactPhone string      `json:"contact_phone"`
	ContactEmail string      `json:"contact_email"`

	Members []GuestMember `json:"members,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Logs    []CheckInLog  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// GuestMember is one named individual inside a group. IsAttending is nil
// until the group answers its RSVP. TableID is nil until seated.
type GuestMember struct {
	gorm.Model
	GuestGroupID uint   `json:"guest_group_id" gorm:"index"`
	Name         string `json:"name"`
	IsAttending  *bool  `json:"is_attending"`
	MenuChoice   string `json:"menu_choice"`
	DrinkChoice  string `json:"drink_choice"`
	Allergies    string `json:"allergies"`
	TableID      *uint  `json:"table_id"`
}
