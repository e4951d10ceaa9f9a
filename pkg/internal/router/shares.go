package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/handle"
)

// RegisterShareRoutes binds the owner's share management surface.
func RegisterShareRoutes(g *gin.RouterGroup) {
	shares := g.Group("/shares")

	{
		shares.POST("", handle.CreateShare)
		shares.GET("", handle.ListShares)
		shares.DELETE("/:id", handle.RevokeShare)
	}
}

// RegisterSharedViewRoutes binds the anonymous share-consumption surface
// directly on the engine (outside /api/v1, no user identity).
func RegisterSharedViewRoutes(e *gin.Engine) {
	s := e.Group("/s/:token")

	{
		s.GET("", handle.GetSharedTarget)
		s.POST("/access", handle.AccessShare)
		s.GET("/list", handle.ListSharedItems)
	}
}
