package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/service"
	"github.com/lendshare/lendshare-backend/pkg/utils"
)

// CreateRequest posts an open item request
func CreateRequest(svc *service.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		var input struct {
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		request, err := svc.Add(c.Request.Context(), userID, input.Description)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"id":          request.ID,
			"description": request.Description,
			"created":     request.Created,
		})
	}
}

// GetOwnRequests lists the caller's requests, newest first
func GetOwnRequests(svc *service.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		details, err := svc.ByRequester(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, requestResponses(details))
	}
}

// GetOtherRequests lists other users' requests, paginated
func GetOtherRequests(svc *service.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		from, size, err := utils.PageParams(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		details, err := svc.ByOthers(c.Request.Context(), userID, from, size)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, requestResponses(details))
	}
}

// GetRequest returns a single request with the items offered for it
func GetRequest(svc *service.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		requestID, err := paramUint(c, "requestId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid request id"})
			return
		}

		detail, err := svc.GetByID(c.Request.Context(), userID, requestID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, requestResponse(detail))
	}
}
