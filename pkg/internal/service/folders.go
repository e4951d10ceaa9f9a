package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/pathkit"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

func folderInfo(f *model.Folder) types.FolderInfo {
	return types.FolderInfo{
		ID:        f.ID,
		Name:      f.Name,
		Path:      f.Path,
		ParentID:  f.ParentID,
		IsTrash:   f.IsTrash,
		IsStarred: f.IsStarred,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func folderInfos(rows []model.Folder) []types.FolderInfo {
	infos := make([]types.FolderInfo, 0, len(rows))
	for i := range rows {
		infos = append(infos, folderInfo(&rows[i]))
	}

	return infos
}

// checkName rejects names that cannot form a path segment.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.New(apperr.KindValidation, "name must not be empty")
	}

	if strings.ContainsRune(name, '/') {
		return apperr.New(apperr.KindValidation, "name must not contain '/'")
	}

	return nil
}

// CreateFolder creates a folder under the given parent. A colliding active
// path is a hard conflict: create never auto-renames, unlike trash and
// restore.
func (s *DriveService) CreateFolder(ctx context.Context, userID string, req types.CreateFolderRequest) (types.FolderInfo, error) {
	var info types.FolderInfo

	if err := checkName(req.Name); err != nil {
		return info, err
	}

	slug := pathkit.Slugify(req.Name)
	if slug == "" {
		return info, apperr.New(apperr.KindValidation, "name has no path-safe characters")
	}

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		parent, err := loadParentFolder(tx, userID, req.ParentID)
		if err != nil {
			return err
		}

		parentPath := ""

		var parentID *string

		if parent != nil {
			parentPath = parent.Path
			parentID = &parent.ID
		}

		path := pathkit.Join(parentPath, slug)

		taken, err := pathExists(tx, userID, path, false, nil)
		if err != nil {
			return err
		}

		if taken {
			return apperr.Newf(apperr.KindDuplicatePath, "an entity already exists at %s", path)
		}

		folder := model.Folder{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     req.Name,
			Path:     path,
			ParentID: parentID,
		}

		if err := tx.Create(&folder).Error; err != nil {
			return err
		}

		info = folderInfo(&folder)

		return nil
	})

	observeMutation("create_folder", err)

	return info, err
}

// GetFolder fetches one folder.
func (s *DriveService) GetFolder(ctx context.Context, userID, id string) (types.FolderInfo, error) {
	var row model.Folder

	err := s.dbClient.GetDB().WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.FolderInfo{}, apperr.New(apperr.KindNotFound, "folder not found")
		}

		return types.FolderInfo{}, err
	}

	if row.UserID != userID {
		return types.FolderInfo{}, apperr.New(apperr.KindForbidden, "folder belongs to another user")
	}

	return folderInfo(&row), nil
}

// ListChildren lists the direct active children (folders and files) of a
// folder, or of the root when parentID is nil.
func (s *DriveService) ListChildren(ctx context.Context, userID string, parentID *string, q types.ListQuery) (types.ListChildrenResponse, error) {
	q.Normalize()

	var resp types.ListChildrenResponse

	dbx := s.dbClient.GetDB().WithContext(ctx)

	if parentID != nil {
		if _, err := loadParentFolder(dbx, userID, parentID); err != nil {
			return resp, err
		}
	}

	parentWhere := func(col string, tx *gorm.DB) *gorm.DB {
		if parentID == nil {
			return tx.Where(col + " IS NULL")
		}

		return tx.Where(col+" = ?", *parentID)
	}

	fq := parentWhere("parent_id", dbx.Model(&model.Folder{}).
		Where("user_id = ? AND is_trash = ?", userID, false))
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

	flq := parentWhere("folder_id", dbx.Model(&model.File{}).
		Where("user_id = ? AND is_trash = ?", userID, false))
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

	resp = types.ListChildrenResponse{
		Total:   folderTotal + fileTotal,
		Page:    q.Page,
		Size:    q.Size,
		Folders: folderInfos(folders),
		Files:   fileInfos(files),
	}

	return resp, nil
}

// ListStarred lists the user's starred active entities.
func (s *DriveService) ListStarred(ctx context.Context, userID string) (types.StarredResponse, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	var folders []model.Folder
	if err := dbx.Where("user_id = ? AND is_trash = ? AND is_starred = ?", userID, false, true).
		Order("path asc").Find(&folders).Error; err != nil {
		return types.StarredResponse{}, err
	}

	var files []model.File
	if err := dbx.Where("user_id = ? AND is_trash = ? AND is_starred = ?", userID, false, true).
		Order("path asc").Find(&files).Error; err != nil {
		return types.StarredResponse{}, err
	}

	return types.StarredResponse{
		Folders: folderInfos(folders),
		Files:   fileInfos(files),
	}, nil
}
