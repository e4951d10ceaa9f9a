package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

// Trash moves an entity into the flattened trash namespace. Folder depth is
// not mirrored: the entity lands directly under /trash with a
// collision-resolved name, and a folder's whole active subtree follows it
// (paths rebased under the new trash path, trash flags flipped) so flag and
// namespace never disagree. Already-trashed entities are a success no-op.
func (s *DriveService) Trash(ctx context.Context, userID string, kind Kind, id string) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		n, err := loadNode(tx, userID, kind, id)
		if err != nil {
			return err
		}

		if n.IsTrash {
			return nil
		}

		name, trashPath, err := resolveUniqueName(n.Name, model.TrashRoot, func(p string) (bool, error) {
			return pathExists(tx, userID, p, true, n)
		})
		if err != nil {
			return err
		}

		oldPath := n.Path
		n.Name = name
		n.Path = trashPath
		n.IsTrash = true

		// ParentID is kept: restore resolves the original parent by id, not
		// by the stale trashed path.
		if err := saveNodePosition(tx, n); err != nil {
			return err
		}

		if n.Kind == KindFolder {
			return retargetSubtreeTrash(tx, userID, oldPath, trashPath, false, true)
		}

		return nil
	})

	observeMutation("trash", err)

	return err
}

// Restore moves a trashed entity back to its original parent, or to the
// root when that parent is gone or itself trashed. A same-named active
// occupant yields a renamed restore, never an overwrite. Already-active
// entities are a success no-op.
func (s *DriveService) Restore(ctx context.Context, userID string, kind Kind, id string) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		n, err := loadNode(tx, userID, kind, id)
		if err != nil {
			return err
		}

		if !n.IsTrash {
			return nil
		}

		parentPath := ""
		parentID := n.ParentID

		if parentID != nil {
			parent, err := loadNode(tx, userID, KindFolder, *parentID)
			switch {
			case err == nil && !parent.IsTrash:
				parentPath = parent.Path
			case err == nil || apperr.IsKind(err, apperr.KindNotFound):
				// Original parent deleted or trashed; fall back to the root.
				parentID = nil
			default:
				return err
			}
		}

		name, newPath, err := resolveUniqueName(n.Name, parentPath, func(p string) (bool, error) {
			return pathExists(tx, userID, p, false, n)
		})
		if err != nil {
			return err
		}

		oldPath := n.Path
		n.Name = name
		n.Path = newPath
		n.ParentID = parentID
		n.IsTrash = false

		if err := saveNodePosition(tx, n); err != nil {
			return err
		}

		if n.Kind == KindFolder {
			return retargetSubtreeTrash(tx, userID, oldPath, newPath, true, false)
		}

		return nil
	})

	observeMutation("restore", err)

	return err
}

// ListTrash lists the user's trash namespace. Only entries directly under
// /trash are shown; descendants that followed a trashed folder keep their
// nested trash paths and are reachable through it.
func (s *DriveService) ListTrash(ctx context.Context, userID string, q types.ListQuery) (types.TrashListResponse, error) {
	q.Normalize()

	var resp types.TrashListResponse

	dbx := s.dbClient.GetDB().WithContext(ctx)
	topLevel := "user_id = ? AND is_trash = ? AND path NOT LIKE ? ESCAPE '#'"
	nested := subtreePattern(model.TrashRoot) + "/%"

	fq := dbx.Model(&model.Folder{}).Where(topLevel, userID, true, nested)

	var folderTotal int64
	if err := fq.Count(&folderTotal).Error; err != nil {
		return resp, err
	}

	var folders []model.Folder
	if err := fq.Order(orderClause(q, KindFolder)).Offset(q.Offset()).Limit(q.Size).Find(&folders).Error; err != nil {
		return resp, err
	}

	flq := dbx.Model(&model.File{}).Where(topLevel, userID, true, nested)

	var fileTotal int64
	if err := flq.Count(&fileTotal).Error; err != nil {
		return resp, err
	}

	var files []model.File
	if err := flq.Order(orderClause(q, KindFile)).Offset(q.Offset()).Limit(q.Size).Find(&files).Error; err != nil {
		return resp, err
	}

	resp = types.TrashListResponse{
		Total:   folderTotal + fileTotal,
		Page:    q.Page,
		Size:    q.Size,
		Folders: folderInfos(folders),
		Files:   fileInfos(files),
	}

	return resp, nil
}

// EmptyTrash permanently deletes everything in the user's trash.
func (s *DriveService) EmptyTrash(ctx context.Context, userID string) (types.PurgeResponse, error) {
	resp, err := s.purgeTrashed(ctx, userID, time.Time{})
	observeMutation("empty_trash", err)

	return resp, err
}

// AutoClean permanently deletes trashed entities older than before. The
// retention sweep job calls this per user.
func (s *DriveService) AutoClean(ctx context.Context, userID string, before time.Time) (types.PurgeResponse, error) {
	resp, err := s.purgeTrashed(ctx, userID, before)
	observeMutation("auto_clean", err)

	return resp, err
}

// UsersWithExpiredTrash lists the users holding trashed entities untouched
// since before, so the retention sweep can purge per tenant.
func (s *DriveService) UsersWithExpiredTrash(ctx context.Context, before time.Time) ([]string, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)
	seen := make(map[string]struct{})

	var users []string

	for _, m := range []any{&model.Folder{}, &model.File{}} {
		var ids []string
		if err := dbx.Model(m).Distinct("user_id").
			Where("is_trash = ? AND updated_at < ?", true, before).
			Pluck("user_id", &ids).Error; err != nil {
			return nil, err
		}

		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}

				users = append(users, id)
			}
		}
	}

	return users, nil
}
