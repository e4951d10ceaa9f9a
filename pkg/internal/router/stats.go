package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/handle"
)

// RegisterStatsRoutes binds the stats surface.
func RegisterStatsRoutes(g *gin.RouterGroup) {
	stats := g.Group("/stats")

	{
		stats.GET("/usage", handle.GetUsage)
	}
}
