package models

import "time"

type ItemRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Description string    `json:"description" gorm:"not null"`
	RequesterID uint      `json:"requesterId" gorm:"not null"`
	Requester   User      `json:"-"`
	Created     time.Time `json:"created" gorm:"not null"`
}

// TableName specifies the table name
func (ItemRequest) TableName() string {
	return "item_requests"
}
