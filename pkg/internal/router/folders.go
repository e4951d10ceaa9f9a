package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/handle"
)

// RegisterFolderRoutes binds the folder tree surface.
func RegisterFolderRoutes(g *gin.RouterGroup) {
	folders := g.Group("/folders")

	{
		folders.POST("", handle.CreateFolder)
		folders.GET("", handle.ListFolderChildren)

		one := folders.Group("/:id")
		{
			one.GET("", handle.GetFolder)
			one.POST("/rename", handle.RenameFolder)
			one.POST("/move", handle.MoveFolder)
			one.POST("/star", handle.StarFolder)
			one.POST("/trash", handle.TrashFolder)
			one.POST("/restore", handle.RestoreFolder)
			one.DELETE("", handle.DeleteFolder)
		}
	}

	g.GET("/starred", handle.ListStarred)
}
