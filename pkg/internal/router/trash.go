package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/handle"
)

// RegisterTrashRoutes binds the trash surface.
func RegisterTrashRoutes(g *gin.RouterGroup) {
	trash := g.Group("/trash")

	{
		trash.GET("", handle.ListTrash)
		trash.DELETE("", handle.EmptyTrash)
		trash.POST("/auto-clean", handle.AutoCleanTrash)
	}
}
