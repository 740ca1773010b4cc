package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/service"
	"github.com/lendshare/lendshare-backend/pkg/utils"
)

// CreateBooking handles the creation of a new booking
func CreateBooking(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		var input struct {
			Start  time.Time `json:"start" binding:"required"`
			End    time.Time `json:"end" binding:"required"`
			ItemID uint      `json:"itemId" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := svc.Create(c.Request.Context(), userID, service.CreateBooking{
			Start:  input.Start,
			End:    input.End,
			ItemID: input.ItemID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, bookingResponse(booking))
	}
}

// SetBookingApproval lets the item owner approve or reject a booking
func SetBookingApproval(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, err := paramUint(c, "bookingId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid booking id"})
			return
		}
		approved, err := strconv.ParseBool(c.Query("approved"))
		if err != nil {
			c.JSON(400, gin.H{"error": "approved query parameter must be a boolean"})
			return
		}

		booking, err := svc.SetApproval(c.Request.Context(), userID, bookingID, approved)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, bookingResponse(booking))
	}
}

// GetBooking returns a single booking to its booker or the item owner
func GetBooking(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, err := paramUint(c, "bookingId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid booking id"})
			return
		}

		booking, err := svc.GetByID(c.Request.Context(), userID, bookingID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, bookingResponse(booking))
	}
}

// GetBookerBookings lists the caller's bookings filtered by state
func GetBookerBookings(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		state := c.DefaultQuery("state", "ALL")
		from, size, err := utils.PageParams(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bookings, err := svc.ListByBooker(c.Request.Context(), userID, state, from, size)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, bookingResponses(bookings))
	}
}

// GetOwnerBookings lists bookings of the caller's items filtered by state
func GetOwnerBookings(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		state := c.DefaultQuery("state", "ALL")
		from, size, err := utils.PageParams(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bookings, err := svc.ListByOwner(c.Request.Context(), userID, state, from, size)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, bookingResponses(bookings))
	}
}

func paramUint(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
