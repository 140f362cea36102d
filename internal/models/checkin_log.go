package models

import (
	"time"

	"gorm.io/gorm"
)

type CheckInType string

const (
	CheckInEntry CheckInType = "entry"
	CheckInExit  CheckInType = "exit"
)

// CheckInLog records one physical entry or exit of a group at the venue.
// Rows are append-only; they are only ever removed by the group cascade.
type CheckInLog struct {
	gorm.Model
	GuestGroupID uint        `json:"guest_group_id" gorm:"index"`
	Type         CheckInType `json:"type" gorm:"type:varchar(8)"`
	LoggedAt     time.Time   `json:"logged_at" gorm:"index"`
}
