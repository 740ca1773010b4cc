package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/service"
	"github.com/lendshare/lendshare-backend/internal/services"
	"github.com/lendshare/lendshare-backend/pkg/utils"
)

// CreateItem handles listing a new item
func CreateItem(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		var input struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Available   *bool  `json:"available"`
			RequestID   *uint  `json:"requestId"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		item, err := svc.Add(c.Request.Context(), userID, service.CreateItem{
			Name:        input.Name,
			Description: input.Description,
			Available:   input.Available,
			RequestID:   input.RequestID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		services.InvalidateSearchCache(c.Request.Context())
		c.JSON(201, itemResponse(item))
	}
}

// UpdateItem applies a partial update to an owned item
func UpdateItem(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, err := paramUint(c, "itemId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid item id"})
			return
		}

		var input struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Available   *bool   `json:"available"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		item, err := svc.Update(c.Request.Context(), userID, itemID, service.UpdateItem{
			Name:        input.Name,
			Description: input.Description,
			Available:   input.Available,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		services.InvalidateSearchCache(c.Request.Context())
		c.JSON(200, itemResponse(item))
	}
}

// GetItem returns an item with its comments; owners also get the
// last/next booking summary
func GetItem(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, err := paramUint(c, "itemId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid item id"})
			return
		}

		detail, err := svc.GetByID(c.Request.Context(), userID, itemID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, itemDetailResponse(detail))
	}
}

// GetOwnerItems lists the caller's items with booking summaries
func GetOwnerItems(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		from, size, err := utils.PageParams(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		details, err := svc.OwnerItems(c.Request.Context(), userID, from, size)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(details))
		for i := range details {
			out = append(out, itemDetailResponse(&details[i]))
		}
		c.JSON(200, out)
	}
}

// SearchItems searches available items, serving repeated queries from
// the Redis cache
func SearchItems(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		text := c.Query("text")
		from, size, err := utils.PageParams(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if cached, ok := services.GetCachedSearch(ctx, text, from, size); ok {
			c.Data(200, "application/json; charset=utf-8", cached)
			return
		}

		items, err := svc.Search(ctx, text, from, size)
		if err != nil {
			respondError(c, err)
			return
		}

		resp := itemResponses(items)
		if payload, err := json.Marshal(resp); err == nil {
			services.CacheSearch(ctx, text, from, size, payload)
		}
		c.JSON(200, resp)
	}
}

// AddComment attaches a review to an item the caller has rented
func AddComment(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, err := paramUint(c, "itemId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid item id"})
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		comment, err := svc.AddComment(c.Request.Context(), userID, itemID, input.Text)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, commentResponse(comment))
	}
}

// UploadItemImage stores an item image and records its URL
func UploadItemImage(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, err := paramUint(c, "itemId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid item id"})
			return
		}

		file, header, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "image file required"})
			return
		}
		defer file.Close()

		url, err := services.UploadItemImage(file, header)
		if err != nil {
			respondError(c, err)
			return
		}

		item, err := svc.SetImage(c.Request.Context(), userID, itemID, url)
		if err != nil {
			respondError(c, err)
			return
		}

		services.InvalidateSearchCache(c.Request.Context())
		c.JSON(200, itemResponse(item))
	}
}
