package models

import "time"

// Follow is a directed subscription edge: UserID follows AuthorID.
// The primary key is a composite of (UserID, AuthorID) to ensure uniqueness.
type Follow struct {
	UserID    uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
