package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/handle"
)

// RegisterHealthRoutes binds the probes directly on the engine.
func RegisterHealthRoutes(e *gin.Engine) {
	e.GET("/healthz", handle.Healthz)
	e.GET("/readyz", handle.Readyz)
}
