package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model

	CampgroundID uint   `gorm:"not null;index"`
	AuthorID     uint   `gorm:"not null;index"` // Set once at creation, never updated
	Rating       int    `gorm:"not null"`
	Body         string `gorm:"not null"`

	// Relationships
	Campground Campground `gorm:"foreignKey:CampgroundID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Author     User       `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
