package models

type Item struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Available   bool   `json:"available" gorm:"column:is_available;not null"`
	OwnerID     uint   `json:"ownerId" gorm:"not null"`
	Owner       User   `json:"-"`
	RequestID   *uint  `json:"requestId,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
