package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/oklog/ulid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/configs"
	ctxPkg "github.com/drivevault/drivevault/pkg/context"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/pathkit"
	"github.com/drivevault/drivevault/pkg/internal/storage/db"
	"github.com/drivevault/drivevault/pkg/internal/storage/kv"
	"github.com/drivevault/drivevault/pkg/internal/types"
	nlog "github.com/drivevault/drivevault/pkg/log"
)

// ShareService creates and resolves share links: opaque tokens granting
// scoped, optionally password-gated, read access to one file or one folder
// subtree.
type ShareService struct {
	dbClient *db.Client
	kvClient *kv.Client
}

func NewShareService(c context.Context) *ShareService {
	return newShareService(ctxPkg.GetDBClient(c), ctxPkg.GetKVClient(c))
}

func newShareService(dbc *db.Client, kvc *kv.Client) *ShareService {
	return &ShareService{dbClient: dbc, kvClient: kvc}
}

var (
	shareEntropyMu sync.Mutex
	shareEntropy   = ulid.Monotonic(crand.Reader, 0)
)

// newShareToken mints an unguessable share token: a "sh_" prefix plus a
// ULID fed from crypto/rand.
func newShareToken() string {
	shareEntropyMu.Lock()
	defer shareEntropyMu.Unlock()

	return "sh_" + ulid.MustNew(ulid.Timestamp(time.Now()), shareEntropy).String()
}

func shareCacheKey(token string) string {
	return "share:token:" + token
}

func shareInfo(link *model.ShareLink) types.ShareInfo {
	return types.ShareInfo{
		ID:        link.ID,
		Token:     link.Token,
		FileID:    link.FileID,
		FolderID:  link.FolderID,
		Protected: link.PasswordHash != "",
		ExpiresAt: link.ExpiresAt,
		CreatedAt: link.CreatedAt,
	}
}

// CreateShare creates a link for exactly one file or folder the owner
// holds. The target must be active; trashed entities cannot be shared.
func (s *ShareService) CreateShare(ctx context.Context, userID string, req types.CreateShareRequest) (types.ShareInfo, error) {
	hasFile := req.FileID != nil && *req.FileID != ""
	hasFolder := req.FolderID != nil && *req.FolderID != ""

	if hasFile == hasFolder {
		return types.ShareInfo{}, apperr.New(apperr.KindValidation, "share exactly one of file_id or folder_id")
	}

	kind := KindFile
	targetID := req.FileID

	if hasFolder {
		kind = KindFolder
		targetID = req.FolderID
	}

	dbx := s.dbClient.GetDB().WithContext(ctx)

	target, err := loadNode(dbx, userID, kind, *targetID)
	if err != nil {
		return types.ShareInfo{}, err
	}

	if target.IsTrash {
		return types.ShareInfo{}, apperr.Newf(apperr.KindInvalidState, "cannot share a trashed %s", kind)
	}

	link := model.ShareLink{
		ID:     uuid.NewString(),
		UserID: userID,
		Token:  newShareToken(),
	}

	if hasFile {
		link.FileID = targetID
	} else {
		link.FolderID = targetID
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return types.ShareInfo{}, err
		}

		link.PasswordHash = string(hash)
	}

	if req.ExpiresInDays > 0 {
		days := req.ExpiresInDays

		maxDays := configs.GetConfig().Share.MaxExpireDays
		if maxDays > 0 && days > maxDays {
			days = maxDays
		}

		expires := time.Now().Add(time.Duration(days) * 24 * time.Hour)
		link.ExpiresAt = &expires
	}

	if err := dbx.Create(&link).Error; err != nil {
		return types.ShareInfo{}, err
	}

	return shareInfo(&link), nil
}

// ListShares lists the owner's share links.
func (s *ShareService) ListShares(ctx context.Context, userID string) (types.ShareListResponse, error) {
	var rows []model.ShareLink
	if err := s.dbClient.GetDB().WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error; err != nil {
		return types.ShareListResponse{}, err
	}

	shares := make([]types.ShareInfo, 0, len(rows))
	for i := range rows {
		shares = append(shares, shareInfo(&rows[i]))
	}

	return types.ShareListResponse{Total: int64(len(shares)), Shares: shares}, nil
}

// RevokeShare deletes one of the owner's share links.
func (s *ShareService) RevokeShare(ctx context.Context, userID, shareID string) error {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	var link model.ShareLink
	if err := dbx.First(&link, "id = ?", shareID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "share not found")
		}

		return err
	}

	if link.UserID != userID {
		return apperr.New(apperr.KindForbidden, "share belongs to another user")
	}

	if err := dbx.Delete(&model.ShareLink{}, "id = ?", link.ID).Error; err != nil {
		return err
	}

	s.invalidateToken(ctx, link.Token)

	return nil
}

func (s *ShareService) invalidateToken(ctx context.Context, token string) {
	if s.kvClient == nil {
		return
	}

	if err := s.kvClient.Delete(ctx, shareCacheKey(token)); err != nil {
		nlog.Logger().Warn().Err(err).Msg("share cache invalidation failed")
	}
}

// ResolveShare maps a token to its share link, via the KV cache when
// available. A cached record is only trusted if its token matches the one
// requested; everything else falls through to the database.
func (s *ShareService) ResolveShare(ctx context.Context, token string) (*model.ShareLink, error) {
	if s.kvClient != nil {
		if data, err := s.kvClient.Get(ctx, shareCacheKey(token)); err == nil {
			var link model.ShareLink
			if err := sonic.Unmarshal(data, &link); err == nil && link.Token == token {
				return &link, nil
			}
		}
	}

	var link model.ShareLink

	err := s.dbClient.GetDB().WithContext(ctx).First(&link, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "share not found")
		}

		return nil, err
	}

	if s.kvClient != nil {
		if data, err := sonic.Marshal(&link); err == nil {
			// Never cache past the link's own expiry.
			ttl := time.Duration(configs.GetConfig().KV.TTLMinutes) * time.Minute
			if link.ExpiresAt != nil {
				if remaining := time.Until(*link.ExpiresAt); remaining < ttl {
					ttl = remaining
				}
			}

			if ttl > 0 {
				if err := s.kvClient.Set(ctx, shareCacheKey(token), data, ttl); err != nil {
					nlog.Logger().Warn().Err(err).Msg("share cache write failed")
				}
			}
		}
	}

	return &link, nil
}

// ValidateAccess checks a viewer's credentials against a resolved link.
// Order: expiry, then the open case, then an existing session credential,
// then a supplied password (which mints a fresh session on success).
func (s *ShareService) ValidateAccess(ctx context.Context, link *model.ShareLink, password, session string) (types.ShareAccessResponse, error) {
	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		return types.ShareAccessResponse{Status: types.AccessExpired}, nil
	}

	if link.PasswordHash == "" {
		return types.ShareAccessResponse{Status: types.AccessAuthorized}, nil
	}

	if session != "" && verifyShareSession(link.Token, session) {
		return types.ShareAccessResponse{Status: types.AccessAuthorized}, nil
	}

	if password == "" {
		return types.ShareAccessResponse{Status: types.AccessPasswordRequired}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)); err != nil {
		return types.ShareAccessResponse{}, apperr.New(apperr.KindForbidden, "wrong password")
	}

	return types.ShareAccessResponse{
		Status:  types.AccessAuthorized,
		Session: mintShareSession(link.Token),
	}, nil
}

// GetTarget describes what an authorized token points at. A trashed shared
// root makes the whole link inaccessible.
func (s *ShareService) GetTarget(ctx context.Context, link *model.ShareLink) (types.SharedTargetResponse, error) {
	resp := types.SharedTargetResponse{Protected: link.PasswordHash != ""}
	dbx := s.dbClient.GetDB().WithContext(ctx)

	if link.FileID != nil {
		var row model.File
		if err := dbx.First(&row, "id = ?", *link.FileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return resp, apperr.New(apperr.KindNotFound, "shared file no longer exists")
			}

			return resp, err
		}

		if row.IsTrash {
			return resp, apperr.New(apperr.KindForbidden, "share is unavailable")
		}

		info := fileInfo(&row)
		resp.File = &info

		return resp, nil
	}

	var row model.Folder
	if err := dbx.First(&row, "id = ?", *link.FolderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, apperr.New(apperr.KindNotFound, "shared folder no longer exists")
		}

		return resp, err
	}

	if row.IsTrash {
		return resp, apperr.New(apperr.KindForbidden, "share is unavailable")
	}

	info := folderInfo(&row)
	resp.Folder = &info

	return resp, nil
}

// ListSubtree lists one level of a shared folder for an authorized viewer.
// relativeFolderID must be nil (the shared root), the shared folder itself,
// or a strict path descendant of it; anything else is outside the share's
// scope. Trashed entities never appear.
func (s *ShareService) ListSubtree(ctx context.Context, link *model.ShareLink, relativeFolderID *string, q types.ListQuery) (types.SharedItemsResponse, error) {
	q.Normalize()

	var resp types.SharedItemsResponse

	if link.FolderID == nil {
		return resp, apperr.New(apperr.KindForbidden, "share does not cover a folder")
	}

	dbx := s.dbClient.GetDB().WithContext(ctx)

	root, err := loadNode(dbx, link.UserID, KindFolder, *link.FolderID)
	if err != nil {
		return resp, err
	}

	if root.IsTrash {
		return resp, apperr.New(apperr.KindForbidden, "share is unavailable")
	}

	scope := root

	if relativeFolderID != nil && *relativeFolderID != "" && *relativeFolderID != root.ID {
		folder, err := loadNode(dbx, link.UserID, KindFolder, *relativeFolderID)
		if err != nil {
			return resp, err
		}

		if !pathkit.IsDescendant(root.Path, folder.Path) {
			return resp, apperr.New(apperr.KindForbidden, "folder is outside the shared subtree")
		}

		if folder.IsTrash {
			return resp, apperr.New(apperr.KindNotFound, "folder not found")
		}

		scope = folder
	}

	fq := dbx.Model(&model.Folder{}).
		Where("user_id = ? AND is_trash = ? AND parent_id = ?", link.UserID, false, scope.ID)
	if q.Search != "" {
		fq = fq.Where("name LIKE ? ESCAPE '#'", "%"+escapeLike(q.Search)+"%")
	}

	var folderTotal int64
	if err := fq.Count(&folderTotal).Error; err != nil {
		return resp, err
	}

	var folders []model.Folder
	if err := fq.Order(orderClause(q, KindFolder)).Offset(q.Offset()).Limit(q.Size).Find(&folders).Error; err != nil {
		return resp, err
	}

	flq := dbx.Model(&model.File{}).
		Where("user_id = ? AND is_trash = ? AND folder_id = ?", link.UserID, false, scope.ID)
	if q.Search != "" {
		flq = flq.Where("name LIKE ? ESCAPE '#'", "%"+escapeLike(q.Search)+"%")
	}

	var fileTotal int64
	if err := flq.Count(&fileTotal).Error; err != nil {
		return resp, err
	}

	var files []model.File
	if err := flq.Order(orderClause(q, KindFile)).Offset(q.Offset()).Limit(q.Size).Find(&files).Error; err != nil {
		return resp, err
	}

	resp = types.SharedItemsResponse{
		Total:   folderTotal + fileTotal,
		Page:    q.Page,
		Size:    q.Size,
		Folders: folderInfos(folders),
		Files:   fileInfos(files),
	}

	return resp, nil
}
