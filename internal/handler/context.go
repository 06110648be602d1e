package handler

import (
	"github.com/gin-gonic/gin"

	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
)

// currentActor returns the authenticated user set by the auth middleware,
// or nil on unauthenticated routes.
func currentActor(c *gin.Context) *models.User {
	v, ok := c.Get(middleware.ActorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*models.User)
	return actor
}
