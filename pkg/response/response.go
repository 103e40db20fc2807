package response

import (
	"log"
	"net/http"

	"titlerate/backend/internal/entity"
	"titlerate/backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// CurrentUser retrieves the authenticated identity set by the auth middleware.
func CurrentUser(c *gin.Context) (*entity.User, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	user, ok := value.(*entity.User)
	if !ok || user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

// Error writes the standardized error envelope.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{
		"error": err.Error(),
		"kind":  apperror.Kind(err),
	})
}
