package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/service"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

// CreateFile registers uploaded-object metadata; POST /api/v1/files. The
// binary is uploaded by the intake collaborator before this is called.
func CreateFile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.CreateFileRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	info, err := svc.CreateFile(c.Request.Context(), user, req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, info)
}

// GetFile fetches one file; GET /api/v1/files/:id.
func GetFile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	info, err := svc.GetFile(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, info)
}

var (
	RenameFile  = renameEntity(service.KindFile)
	MoveFile    = moveEntity(service.KindFile)
	StarFile    = starEntity(service.KindFile)
	TrashFile   = trashEntity(service.KindFile)
	RestoreFile = restoreEntity(service.KindFile)
	DeleteFile  = deleteEntity(service.KindFile)
)
