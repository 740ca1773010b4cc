package models

import "time"

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID       uint          `json:"id" gorm:"primaryKey"`
	Start    time.Time     `json:"start" gorm:"column:start_date;not null"`
	End      time.Time     `json:"end" gorm:"column:end_date;not null"`
	Status   BookingStatus `json:"status" gorm:"not null;default:'WAITING'"`
	ItemID   uint          `json:"itemId" gorm:"not null"`
	Item     Item          `json:"item"`
	BookerID uint          `json:"bookerId" gorm:"not null"`
	Booker   User          `json:"booker"`
}
