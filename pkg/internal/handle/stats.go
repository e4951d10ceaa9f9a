package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/service"
)

// GetUsage reports the quota ledger against the plan ceiling; GET
// /api/v1/stats/usage.
func GetUsage(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	resp, err := svc.Usage(c.Request.Context(), user)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
