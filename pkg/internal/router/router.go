// Package router binds the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes binds the authenticated API surface onto the versioned
// group (normally /api/v1).
func RegisterAPIRoutes(g *gin.RouterGroup) {
	RegisterFolderRoutes(g)
	RegisterFileRoutes(g)
	RegisterTrashRoutes(g)
	RegisterShareRoutes(g)
	RegisterStatsRoutes(g)
}
