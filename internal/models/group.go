package models

import "gorm.io/gorm"

// Group is a thematic community that posts can optionally belong to.
// The slug is the URL-safe identifier used in group routes.
type Group struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:40;unique;not null"`
	Description string
}
