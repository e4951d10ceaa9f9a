package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/internal/service"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

// CreateFolder creates a folder; POST /api/v1/folders.
func CreateFolder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.CreateFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	info, err := svc.CreateFolder(c.Request.Context(), user, req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, info)
}

// GetFolder fetches one folder; GET /api/v1/folders/:id.
func GetFolder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	info, err := svc.GetFolder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, info)
}

// ListFolderChildren lists a level of the tree; GET /api/v1/folders
// (?parent_id= selects a folder, absent means the root).
func ListFolderChildren(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	var parentID *string
	if id := c.Query("parent_id"); id != "" {
		parentID = &id
	}

	svc := service.NewDriveService(c.Request.Context())

	resp, err := svc.ListChildren(c.Request.Context(), user, parentID, q)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// entityAction runs one structural mutation for the entity in the path and
// answers 204 on success. Shared by the folder and file route groups.
func entityAction(c *gin.Context, act func(svc *service.DriveService, user, id string) error) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})

		return
	}

	svc := service.NewDriveService(c.Request.Context())

	if err := act(svc, user, id); err != nil {
		fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// renameEntity builds the rename handler for a kind; POST .../:id/rename.
func renameEntity(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.RenameRequest
		if !bindJSON(c, &req) {
			return
		}

		entityAction(c, func(svc *service.DriveService, user, id string) error {
			return svc.Rename(c.Request.Context(), user, kind, id, req.NewName)
		})
	}
}

// moveEntity builds the move handler for a kind; POST .../:id/move.
func moveEntity(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.MoveRequest
		if !bindJSON(c, &req) {
			return
		}

		entityAction(c, func(svc *service.DriveService, user, id string) error {
			return svc.Move(c.Request.Context(), user, kind, id, req.TargetParentID)
		})
	}
}

// starEntity builds the star handler for a kind; POST .../:id/star.
func starEntity(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.StarRequest
		if !bindJSON(c, &req) {
			return
		}

		entityAction(c, func(svc *service.DriveService, user, id string) error {
			return svc.SetStarred(c.Request.Context(), user, kind, id, *req.Starred)
		})
	}
}

// trashEntity builds the trash handler for a kind; POST .../:id/trash.
func trashEntity(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityAction(c, func(svc *service.DriveService, user, id string) error {
			return svc.Trash(c.Request.Context(), user, kind, id)
		})
	}
}

// restoreEntity builds the restore handler for a kind; POST .../:id/restore.
func restoreEntity(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityAction(c, func(svc *service.DriveService, user, id string) error {
			return svc.Restore(c.Request.Context(), user, kind, id)
		})
	}
}

// deleteEntity builds the permanent-delete handler; DELETE .../:id.
func deleteEntity(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityAction(c, func(svc *service.DriveService, user, id string) error {
			return svc.PermanentDelete(c.Request.Context(), user, kind, id)
		})
	}
}

var (
	RenameFolder  = renameEntity(service.KindFolder)
	MoveFolder    = moveEntity(service.KindFolder)
	StarFolder    = starEntity(service.KindFolder)
	TrashFolder   = trashEntity(service.KindFolder)
	RestoreFolder = restoreEntity(service.KindFolder)
	DeleteFolder  = deleteEntity(service.KindFolder)
)

// ListStarred lists starred entities; GET /api/v1/starred.
func ListStarred(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewDriveService(c.Request.Context())

	resp, err := svc.ListStarred(c.Request.Context(), user)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
