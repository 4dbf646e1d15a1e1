package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single blog entry. PubDate is assigned once at creation and is
// the primary sort key of every feed; edits never touch it.
type Post struct {
	gorm.Model
	Text    string    `gorm:"not null"`
	PubDate time.Time `gorm:"not null;index"`
	Image   string    `gorm:"size:512"`

	AuthorID uint `gorm:"not null;index"`
	Author   User `gorm:"foreignKey:AuthorID"`

	// A post may belong to at most one group. Deleting the group clears
	// the reference instead of deleting the post.
	GroupID *uint  `gorm:"index"`
	Group   *Group `gorm:"foreignKey:GroupID"`
}
