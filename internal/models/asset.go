package models

import (
	"gorm.io/gorm"
)

type AssetType string

const (
	AssetHero    AssetType = "hero"
	AssetGallery AssetType = "gallery"
	AssetVideo   AssetType = "video"
	AssetMusic   AssetType = "music"
)

// Asset is one uploaded media file for an event. ObjectName is the randomized
// on-disk name; the original filename is not kept.
type Asset struct {
	gorm.Model
	EventID     uint      `json:"event_id" gorm:"index"`
	Type        AssetType `json:"type" gorm:"type:varchar(16)"`
	ObjectName  string    `json:"object_name" gorm:"uniqueIndex"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
}
