package models

import (
	"gorm.io/gorm"
)

// Setting is one admin-editable key-value row (site name, currency, payment
// mode, tier prices). The typed view lives in internal/settings, which loads
// and validates all rows at startup.
type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}
