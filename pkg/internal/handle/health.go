package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/drivevault/drivevault/pkg/context"
)

// Healthz is the liveness probe; GET /healthz.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz is the readiness probe; GET /readyz. It verifies the database and
// object storage are reachable.
func Readyz(c *gin.Context) {
	ctx := c.Request.Context()
	mgr := ctxPkg.GetManager(ctx)

	if mgr == nil || mgr.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage not initialized"})

		return
	}

	sqlDB, err := mgr.DB.GetDB().DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})

		return
	}

	if mgr.S3 != nil {
		if err := mgr.S3.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "object storage unreachable"})

			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
