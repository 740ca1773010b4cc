package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/service"
)

// GetUsers lists all users
func GetUsers(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.All(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, users)
	}
}

// CreateUser registers a new user
func CreateUser(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user, err := svc.Add(c.Request.Context(), service.CreateUser{
			Name:  input.Name,
			Email: input.Email,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, user)
	}
}

// GetUser returns a single user
func GetUser(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramUint(c, "userId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid user id"})
			return
		}

		user, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, user)
	}
}

// UpdateUser applies a partial update
func UpdateUser(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramUint(c, "userId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user, err := svc.Update(c.Request.Context(), id, service.UpdateUser{
			Name:  input.Name,
			Email: input.Email,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, user)
	}
}

// DeleteUser removes a user
func DeleteUser(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramUint(c, "userId")
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid user id"})
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		c.Status(200)
	}
}
