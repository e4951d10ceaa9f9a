package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/types"
	nlog "github.com/drivevault/drivevault/pkg/log"
)

// PermanentDelete destroys an entity (active or trashed) and everything
// under it. Object storage is cleared first and a failure there aborts the
// whole transaction: metadata and the quota ledger stay untouched rather
// than orphaning billed storage with no accounting.
func (s *DriveService) PermanentDelete(ctx context.Context, userID string, kind Kind, id string) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		n, err := loadNode(tx, userID, kind, id)
		if err != nil {
			return err
		}

		switch n.Kind {
		case KindFile:
			return s.destroyFiles(ctx, tx, userID, []string{n.ID}, nil)
		case KindFolder:
			folderIDs, err := collectFolderIDs(tx, userID, n)
			if err != nil {
				return err
			}

			var fileIDs []string
			if err := tx.Model(&model.File{}).
				Where("user_id = ? AND is_trash = ? AND folder_id IN ?", userID, n.IsTrash, folderIDs).
				Pluck("id", &fileIDs).Error; err != nil {
				return err
			}

			return s.destroyFiles(ctx, tx, userID, fileIDs, folderIDs)
		}

		return apperr.Newf(apperr.KindInternal, "unknown entity kind %q", n.Kind)
	})

	observeMutation("permanent_delete", err)

	return err
}

// collectFolderIDs returns a folder and every descendant folder in the same
// trash partition, found by path prefix.
func collectFolderIDs(tx *gorm.DB, userID string, n *node) ([]string, error) {
	ids := []string{n.ID}

	var descendants []string
	if err := tx.Model(&model.Folder{}).
		Where("user_id = ? AND is_trash = ? AND path LIKE ? ESCAPE '#'", userID, n.IsTrash, subtreePattern(n.Path)).
		Pluck("id", &descendants).Error; err != nil {
		return nil, err
	}

	return append(ids, descendants...), nil
}

// destroyFiles removes the given files' stored objects, their rows, their
// share links and the enclosing folders (when folderIDs is non-empty), then
// decrements the quota ledger by the freed bytes. Runs inside the caller's
// transaction.
func (s *DriveService) destroyFiles(ctx context.Context, tx *gorm.DB, userID string, fileIDs, folderIDs []string) error {
	var (
		freed     int64
		objectIDs []string
	)

	if len(fileIDs) > 0 {
		var files []model.File
		if err := tx.Where("id IN ?", fileIDs).Find(&files).Error; err != nil {
			return err
		}

		for i := range files {
			freed += files[i].Size

			if files[i].StorageObjectID != "" {
				objectIDs = append(objectIDs, files[i].StorageObjectID)
			}
		}
	}

	if len(objectIDs) == 1 {
		if err := s.objects.RemoveOne(ctx, objectIDs[0]); err != nil {
			return apperr.Wrap(apperr.KindDependency, "object storage delete failed", err)
		}
	} else if len(objectIDs) > 1 {
		if err := s.objects.RemoveMany(ctx, objectIDs); err != nil {
			return apperr.Wrap(apperr.KindDependency, "object storage bulk delete failed", err)
		}
	}

	if err := s.dropShareLinks(ctx, tx, userID, fileIDs, folderIDs); err != nil {
		return err
	}

	if len(fileIDs) > 0 {
		if err := tx.Where("id IN ?", fileIDs).Delete(&model.File{}).Error; err != nil {
			return err
		}
	}

	if len(folderIDs) > 0 {
		if err := tx.Where("id IN ?", folderIDs).Delete(&model.Folder{}).Error; err != nil {
			return err
		}
	}

	return adjustUsedStorage(tx, userID, -freed)
}

// dropShareLinks deletes share links pointing at the given entities and
// invalidates their cache entries.
func (s *DriveService) dropShareLinks(ctx context.Context, tx *gorm.DB, userID string, fileIDs, folderIDs []string) error {
	if len(fileIDs) == 0 && len(folderIDs) == 0 {
		return nil
	}

	linkQuery := func() *gorm.DB {
		q := tx.Model(&model.ShareLink{}).Where("user_id = ?", userID)

		switch {
		case len(fileIDs) > 0 && len(folderIDs) > 0:
			return q.Where("file_id IN ? OR folder_id IN ?", fileIDs, folderIDs)
		case len(fileIDs) > 0:
			return q.Where("file_id IN ?", fileIDs)
		default:
			return q.Where("folder_id IN ?", folderIDs)
		}
	}

	var tokens []string
	if err := linkQuery().Pluck("token", &tokens).Error; err != nil {
		return err
	}

	if len(tokens) == 0 {
		return nil
	}

	if err := linkQuery().Delete(&model.ShareLink{}).Error; err != nil {
		return err
	}

	// Cache invalidation is best-effort; a stale entry resolves to a token
	// whose row is gone and fails the DB cross-check.
	if s.kvClient != nil {
		for _, token := range tokens {
			if err := s.kvClient.Delete(ctx, shareCacheKey(token)); err != nil {
				nlog.Logger().Warn().Err(err).Msg("share cache invalidation failed")
			}
		}
	}

	return nil
}

// purgeTrashed permanently deletes the user's trashed entities, optionally
// only those untouched since before (zero means everything).
func (s *DriveService) purgeTrashed(ctx context.Context, userID string, before time.Time) (types.PurgeResponse, error) {
	var resp types.PurgeResponse

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		cutoff := func(q *gorm.DB) *gorm.DB {
			if before.IsZero() {
				return q
			}

			return q.Where("updated_at < ?", before)
		}

		var folderIDs []string
		if err := cutoff(tx.Model(&model.Folder{}).
			Where("user_id = ? AND is_trash = ?", userID, true)).
			Pluck("id", &folderIDs).Error; err != nil {
			return err
		}

		var fileIDs []string
		if err := cutoff(tx.Model(&model.File{}).
			Where("user_id = ? AND is_trash = ?", userID, true)).
			Pluck("id", &fileIDs).Error; err != nil {
			return err
		}

		if len(folderIDs) == 0 && len(fileIDs) == 0 {
			return nil
		}

		var freed int64

		if len(fileIDs) > 0 {
			if err := tx.Model(&model.File{}).Where("id IN ?", fileIDs).
				Select("COALESCE(SUM(size), 0)").Scan(&freed).Error; err != nil {
				return err
			}
		}

		if err := s.destroyFiles(ctx, tx, userID, fileIDs, folderIDs); err != nil {
			return err
		}

		resp = types.PurgeResponse{
			RemovedFolders: len(folderIDs),
			RemovedFiles:   len(fileIDs),
			FreedBytes:     freed,
		}

		return nil
	})

	return resp, err
}
