package models

import "gorm.io/gorm"

type Campground struct {
	gorm.Model

	Title       string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Description string  `gorm:"not null"`
	Location    string  `gorm:"not null"`
	AuthorID    uint    `gorm:"not null;index"` // Set once at creation, never updated

	// Relationships
	Author  User              `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Images  []CampgroundImage `gorm:"foreignKey:CampgroundID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reviews []Review          `gorm:"foreignKey:CampgroundID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
