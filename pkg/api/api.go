// Package api binds the HTTP surface onto a gin engine.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/router"
)

// RegisterRoutes mounts the versioned API group, the public share view and
// the health probes on the engine.
func RegisterRoutes(e *gin.Engine) *gin.Engine {
	router.RegisterAPIRoutes(e.Group("/api/v1"))
	router.RegisterSharedViewRoutes(e)
	router.RegisterHealthRoutes(e)

	return e
}
