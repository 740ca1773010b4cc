package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/service"
)

// respondError maps service failure kinds to HTTP statuses. Anything
// that is not a service error is an internal fault: logged with
// detail, surfaced opaquely.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case service.KindNotFound:
			c.JSON(404, gin.H{"error": svcErr.Message})
		case service.KindConflict:
			c.JSON(409, gin.H{"error": svcErr.Message})
		default:
			c.JSON(400, gin.H{"error": svcErr.Message})
		}
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(500, gin.H{"error": "internal server error"})
}
