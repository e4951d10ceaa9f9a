package handle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/service"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

// ListTrash lists the trash namespace; GET /api/v1/trash.
func ListTrash(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewDriveService(c.Request.Context())

	resp, err := svc.ListTrash(c.Request.Context(), user, q)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// EmptyTrash permanently deletes everything in the trash; DELETE
// /api/v1/trash.
func EmptyTrash(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	resp, err := svc.EmptyTrash(c.Request.Context(), user)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// AutoCleanTrash applies the retention policy on demand; POST
// /api/v1/trash/auto-clean. Without a body it uses the configured retention
// window.
func AutoCleanTrash(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	days := configs.GetConfig().Trash.RetentionDays

	var req struct {
		Days int `json:"days" rule:"omitempty,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err == nil && req.Days > 0 {
		days = req.Days
	}

	before := time.Now().AddDate(0, 0, -days)
	svc := service.NewDriveService(c.Request.Context())

	resp, err := svc.AutoClean(c.Request.Context(), user, before)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
