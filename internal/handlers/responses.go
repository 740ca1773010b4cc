package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/service"
)

func bookingResponse(b *models.Booking) gin.H {
	return gin.H{
		"id":     b.ID,
		"start":  b.Start,
		"end":    b.End,
		"status": b.Status,
		"booker": gin.H{
			"id":    b.Booker.ID,
			"name":  b.Booker.Name,
			"email": b.Booker.Email,
		},
		"item": gin.H{
			"id":          b.Item.ID,
			"name":        b.Item.Name,
			"description": b.Item.Description,
			"available":   b.Item.Available,
			"requestId":   b.Item.RequestID,
		},
	}
}

func bookingResponses(bookings []models.Booking) []gin.H {
	out := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookingResponse(&bookings[i]))
	}
	return out
}

// bookingSummaryResponse is the short form embedded in the owner's
// item view.
func bookingSummaryResponse(b *models.Booking) gin.H {
	return gin.H{
		"id":       b.ID,
		"bookerId": b.BookerID,
		"start":    b.Start,
		"end":      b.End,
		"status":   b.Status,
	}
}

func itemResponse(item *models.Item) gin.H {
	h := gin.H{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
		"available":   item.Available,
		"requestId":   item.RequestID,
	}
	if item.ImageURL != "" {
		h["imageUrl"] = item.ImageURL
	}
	return h
}

func itemResponses(items []models.Item) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, itemResponse(&items[i]))
	}
	return out
}

func itemDetailResponse(d *service.ItemDetail) gin.H {
	h := itemResponse(&d.Item)
	h["comments"] = commentResponses(d.Comments)
	if d.LastBooking != nil {
		h["lastBooking"] = bookingSummaryResponse(d.LastBooking)
	}
	if d.NextBooking != nil {
		h["nextBooking"] = bookingSummaryResponse(d.NextBooking)
	}
	return h
}

func commentResponse(c *models.Comment) gin.H {
	return gin.H{
		"id":         c.ID,
		"text":       c.Text,
		"authorName": c.Author.Name,
		"created":    c.Created,
	}
}

func commentResponses(comments []models.Comment) []gin.H {
	out := make([]gin.H, 0, len(comments))
	for i := range comments {
		out = append(out, commentResponse(&comments[i]))
	}
	return out
}

func requestResponse(d *service.RequestDetail) gin.H {
	return gin.H{
		"id":          d.ID,
		"description": d.Description,
		"created":     d.Created,
		"items":       itemResponses(d.Items),
	}
}

func requestResponses(details []service.RequestDetail) []gin.H {
	out := make([]gin.H, 0, len(details))
	for i := range details {
		out = append(out, requestResponse(&details[i]))
	}
	return out
}
