package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/pathkit"
	"github.com/drivevault/drivevault/pkg/internal/types"
	"github.com/drivevault/drivevault/pkg/metrics"
)

func fileInfo(f *model.File) types.FileInfo {
	return types.FileInfo{
		ID:           f.ID,
		Name:         f.Name,
		Path:         f.Path,
		FolderID:     f.FolderID,
		Size:         f.Size,
		Type:         string(f.Type),
		FileURL:      f.FileURL,
		ThumbnailURL: f.ThumbnailURL,
		IsTrash:      f.IsTrash,
		IsStarred:    f.IsStarred,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func fileInfos(rows []model.File) []types.FileInfo {
	infos := make([]types.FileInfo, 0, len(rows))
	for i := range rows {
		infos = append(infos, fileInfo(&rows[i]))
	}

	return infos
}

func observeMutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}

	metrics.MutationCounter.WithLabelValues(op, outcome).Inc()
}

// CreateFile registers an uploaded object's metadata under the given folder
// and moves the quota ledger by its size in the same transaction. The file
// path keeps the raw display name; only renames and moves slug it.
func (s *DriveService) CreateFile(ctx context.Context, userID string, req types.CreateFileRequest) (types.FileInfo, error) {
	var info types.FileInfo

	if err := checkName(req.Name); err != nil {
		return info, err
	}

	if !model.ValidFileType(model.FileType(req.Type)) {
		return info, apperr.Newf(apperr.KindValidation, "unknown file type %q", req.Type)
	}

	if req.Size < 0 {
		return info, apperr.New(apperr.KindValidation, "size must not be negative")
	}

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		folder, err := loadParentFolder(tx, userID, req.FolderID)
		if err != nil {
			return err
		}

		folderPath := ""

		var folderID *string

		if folder != nil {
			folderPath = folder.Path
			folderID = &folder.ID
		}

		path := pathkit.Join(folderPath, req.Name)

		taken, err := pathExists(tx, userID, path, false, nil)
		if err != nil {
			return err
		}

		if taken {
			return apperr.Newf(apperr.KindDuplicatePath, "an entity already exists at %s", path)
		}

		if err := checkPlanCeiling(tx, userID, req.Size); err != nil {
			return err
		}

		file := model.File{
			ID:              uuid.NewString(),
			UserID:          userID,
			Name:            req.Name,
			Path:            path,
			FolderID:        folderID,
			Size:            req.Size,
			Type:            model.FileType(req.Type),
			FileURL:         req.FileURL,
			ThumbnailURL:    req.ThumbnailURL,
			StorageObjectID: req.StorageObjectID,
		}

		if err := tx.Create(&file).Error; err != nil {
			return err
		}

		if err := adjustUsedStorage(tx, userID, file.Size); err != nil {
			return err
		}

		info = fileInfo(&file)

		return nil
	})

	observeMutation("create_file", err)

	return info, err
}

// checkPlanCeiling rejects a create that would push the ledger past the
// user's plan limit. The ledger itself never clamps.
func checkPlanCeiling(tx *gorm.DB, userID string, size int64) error {
	user, err := loadLedger(tx, userID)
	if err != nil {
		return err
	}

	limit := configs.GetConfig().Quota.PlanLimitBytes(user.Plan)
	if limit != configs.UnlimitedPlanBytes && user.UsedStorage+size > limit {
		return apperr.New(apperr.KindValidation, "storage quota exceeded")
	}

	return nil
}

// GetFile fetches one file.
func (s *DriveService) GetFile(ctx context.Context, userID, id string) (types.FileInfo, error) {
	var row model.File

	err := s.dbClient.GetDB().WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.FileInfo{}, apperr.New(apperr.KindNotFound, "file not found")
		}

		return types.FileInfo{}, err
	}

	if row.UserID != userID {
		return types.FileInfo{}, apperr.New(apperr.KindForbidden, "file belongs to another user")
	}

	return fileInfo(&row), nil
}
