package models

import "time"

type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"not null"`
	ItemID   uint      `json:"itemId" gorm:"not null"`
	AuthorID uint      `json:"authorId" gorm:"not null"`
	Author   User      `json:"-"`
	Created  time.Time `json:"created" gorm:"not null"`
}
