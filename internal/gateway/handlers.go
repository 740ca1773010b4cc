package gateway

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/service"
	"github.com/lendshare/lendshare-backend/pkg/utils"
)

// The gateway rejects obviously invalid input before it reaches the
// core server; everything it lets through is forwarded unchanged.

// CreateBooking pre-validates the booking time bounds.
func CreateBooking(cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read request body"})
			return
		}

		var input struct {
			Start  *time.Time `json:"start"`
			End    *time.Time `json:"end"`
			ItemID uint       `json:"itemId"`
		}
		if err := json.Unmarshal(body, &input); err != nil || input.Start == nil || input.End == nil || input.ItemID == 0 {
			c.JSON(400, gin.H{"error": "start, end and itemId are required"})
			return
		}

		now := time.Now()
		if input.Start.Before(now) {
			c.JSON(400, gin.H{"error": "booking start is in the past"})
			return
		}
		if input.End.Before(now) {
			c.JSON(400, gin.H{"error": "booking end is in the past"})
			return
		}
		if input.Start.After(*input.End) {
			c.JSON(400, gin.H{"error": "booking start is after its end"})
			return
		}

		cl.forwardBody(c, body)
	}
}

// ListBookings pre-validates the state filter and page bounds.
func ListBookings(cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := service.ParseState(c.DefaultQuery("state", "ALL")); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !pageOK(c) {
			return
		}
		cl.Forward(c)
	}
}

// CreateItem pre-validates the required item fields.
func CreateItem(cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read request body"})
			return
		}

		var input struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Available   *bool  `json:"available"`
		}
		if err := json.Unmarshal(body, &input); err != nil {
			c.JSON(400, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(input.Name) == "" {
			c.JSON(400, gin.H{"error": "item name must not be blank"})
			return
		}
		if strings.TrimSpace(input.Description) == "" {
			c.JSON(400, gin.H{"error": "item description must not be blank"})
			return
		}
		if input.Available == nil {
			c.JSON(400, gin.H{"error": "item availability must be set"})
			return
		}

		cl.forwardBody(c, body)
	}
}

// AddComment pre-validates the comment text.
func AddComment(cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read request body"})
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &input); err != nil || strings.TrimSpace(input.Text) == "" {
			c.JSON(400, gin.H{"error": "comment text must not be blank"})
			return
		}

		cl.forwardBody(c, body)
	}
}

// CreateUser pre-validates the email.
func CreateUser(cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read request body"})
			return
		}

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(body, &input); err != nil {
			c.JSON(400, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
			c.JSON(400, gin.H{"error": "invalid email"})
			return
		}

		cl.forwardBody(c, body)
	}
}

// Paginated pre-validates the from/size bounds of a list endpoint.
func Paginated(cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !pageOK(c) {
			return
		}
		cl.Forward(c)
	}
}

func pageOK(c *gin.Context) bool {
	from, size, err := utils.PageParams(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return false
	}
	if from < 0 {
		c.JSON(400, gin.H{"error": "invalid value of from"})
		return false
	}
	if size < 1 {
		c.JSON(400, gin.H{"error": "invalid value of size"})
		return false
	}
	return true
}
