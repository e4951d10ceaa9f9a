package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/handle"
)

// RegisterFileRoutes binds the file surface.
func RegisterFileRoutes(g *gin.RouterGroup) {
	files := g.Group("/files")

	{
		files.POST("", handle.CreateFile)

		one := files.Group("/:id")
		{
			one.GET("", handle.GetFile)
			one.POST("/rename", handle.RenameFile)
			one.POST("/move", handle.MoveFile)
			one.POST("/star", handle.StarFile)
			one.POST("/trash", handle.TrashFile)
			one.POST("/restore", handle.RestoreFile)
			one.DELETE("", handle.DeleteFile)
		}
	}
}
