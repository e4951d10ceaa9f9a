package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/service"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

const shareSessionCookie = "share_session"

// CreateShare creates a share link; POST /api/v1/shares.
func CreateShare(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.CreateShareRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewShareService(c.Request.Context())

	info, err := svc.CreateShare(c.Request.Context(), user, req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, info)
}

// ListShares lists the owner's share links; GET /api/v1/shares.
func ListShares(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewShareService(c.Request.Context())

	resp, err := svc.ListShares(c.Request.Context(), user)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeShare deletes a share link; DELETE /api/v1/shares/:id.
func RevokeShare(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewShareService(c.Request.Context())

	if err := svc.RevokeShare(c.Request.Context(), user, c.Param("id")); err != nil {
		fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// shareSession reads the viewer's session credential from the cookie or the
// X-Share-Session header.
func shareSession(c *gin.Context) string {
	if v, err := c.Cookie(shareSessionCookie); err == nil && v != "" {
		return v
	}

	return c.GetHeader("X-Share-Session")
}

// resolveAuthorized resolves the token in the path and enforces access.
// Password-gated shares answer 401 with password_required until the viewer
// exchanges the password at the access endpoint; expired links answer 410.
func resolveAuthorized(c *gin.Context) (*service.ShareService, *model.ShareLink, bool) {
	svc := service.NewShareService(c.Request.Context())

	link, err := svc.ResolveShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		fail(c, err)

		return nil, nil, false
	}

	access, err := svc.ValidateAccess(c.Request.Context(), link, "", shareSession(c))
	if err != nil {
		fail(c, err)

		return nil, nil, false
	}

	switch access.Status {
	case types.AccessAuthorized:
		return svc, link, true
	case types.AccessExpired:
		c.JSON(http.StatusGone, types.ShareAccessResponse{Status: access.Status})
	case types.AccessPasswordRequired:
		c.JSON(http.StatusUnauthorized, types.ShareAccessResponse{Status: access.Status})
	}

	return nil, nil, false
}

// GetSharedTarget describes what a share points at; GET /s/:token.
func GetSharedTarget(c *gin.Context) {
	svc, link, ok := resolveAuthorized(c)
	if !ok {
		return
	}

	resp, err := svc.GetTarget(c.Request.Context(), link)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// AccessShare exchanges a share password for a session credential; POST
// /s/:token/access.
func AccessShare(c *gin.Context) {
	svc := service.NewShareService(c.Request.Context())

	link, err := svc.ResolveShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		fail(c, err)

		return
	}

	var req types.ShareAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := svc.ValidateAccess(c.Request.Context(), link, req.Password, shareSession(c))
	if err != nil {
		fail(c, err)

		return
	}

	if access.Status == types.AccessExpired {
		c.JSON(http.StatusGone, access)

		return
	}

	if access.Session != "" {
		ttl := int(configs.GetConfig().Share.GetSessionTTL().Seconds())
		c.SetCookie(shareSessionCookie, access.Session, ttl, "/s", "", false, true)
	}

	c.JSON(http.StatusOK, access)
}

// ListSharedItems lists one level of a shared folder; GET /s/:token/list
// (?folder_id= walks into the shared subtree).
func ListSharedItems(c *gin.Context) {
	svc, link, ok := resolveAuthorized(c)
	if !ok {
		return
	}

	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	var folderID *string
	if id := c.Query("folder_id"); id != "" {
		folderID = &id
	}

	resp, err := svc.ListSubtree(c.Request.Context(), link, folderID, q)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
