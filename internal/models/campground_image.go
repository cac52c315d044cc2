package models

import "gorm.io/gorm"

type CampgroundImage struct {
	gorm.Model

	CampgroundID uint   `gorm:"not null;index"`
	URL          string `gorm:"not null"`
	Filename     string `gorm:"not null"` // Object key in the image store
	Position     int    `gorm:"not null;default:0"`

	// Relationships
	Campground Campground `gorm:"foreignKey:CampgroundID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
