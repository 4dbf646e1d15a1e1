package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to a post; deleting the post deletes its comments.
type Comment struct {
	gorm.Model
	Text    string    `gorm:"not null"`
	Created time.Time `gorm:"not null;index"`

	PostID uint `gorm:"not null;index"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`

	AuthorID uint `gorm:"not null;index"`
	Author   User `gorm:"foreignKey:AuthorID"`
}
