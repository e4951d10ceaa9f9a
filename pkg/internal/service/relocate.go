package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/pathkit"
)

// relocate is the shared core of rename and move: recompute the node's path
// from its (possibly new) parent and name, guard against collisions, persist
// it and propagate the prefix change to active descendants when a folder's
// own path changed. The path column is derived state; the parent pointer and
// name are the source of truth, so rename and move are one operation
// internally.
func (s *DriveService) relocate(tx *gorm.DB, n *node, newName string, newParent *node, reparent bool) error {
	if n.IsTrash {
		return apperr.Newf(apperr.KindInvalidState, "%s is in the trash", n.Kind)
	}

	parent := newParent
	if !reparent {
		loaded, err := loadParentFolder(tx, n.UserID, n.ParentID)
		if err != nil {
			return err
		}

		parent = loaded
	}

	parentPath := ""

	var parentID *string

	if parent != nil {
		parentPath = parent.Path
		parentID = &parent.ID
	}

	slug := pathkit.Slugify(newName)
	if slug == "" {
		return apperr.New(apperr.KindValidation, "name has no path-safe characters")
	}

	newPath := pathkit.Join(parentPath, slug)

	if newPath != n.Path {
		taken, err := pathExists(tx, n.UserID, newPath, false, n)
		if err != nil {
			return err
		}

		if taken {
			return apperr.Newf(apperr.KindDuplicatePath, "an entity already exists at %s", newPath)
		}
	}

	oldPath := n.Path
	n.Name = newName
	n.Path = newPath

	if reparent {
		n.ParentID = parentID
	}

	if err := saveNodePosition(tx, n); err != nil {
		return err
	}

	if n.Kind == KindFolder && oldPath != newPath {
		return propagateSubtree(tx, n.UserID, oldPath, newPath)
	}

	return nil
}

// Rename changes an entity's display name in place. Renaming a folder
// shifts every descendant's stored path, because those paths embed the
// folder's segment as a prefix.
func (s *DriveService) Rename(ctx context.Context, userID string, kind Kind, id, newName string) error {
	if err := checkName(newName); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		n, err := loadNode(tx, userID, kind, id)
		if err != nil {
			return err
		}

		if newName == n.Name {
			return nil
		}

		return s.relocate(tx, n, newName, nil, false)
	})

	observeMutation("rename", err)

	return err
}

// Move reparents an entity; a nil target means the root. Moving a folder
// into itself or into its own subtree is rejected before anything changes.
func (s *DriveService) Move(ctx context.Context, userID string, kind Kind, id string, targetParentID *string) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		n, err := loadNode(tx, userID, kind, id)
		if err != nil {
			return err
		}

		if n.IsTrash {
			return apperr.Newf(apperr.KindInvalidState, "%s is in the trash", n.Kind)
		}

		target, err := loadParentFolder(tx, userID, targetParentID)
		if err != nil {
			return err
		}

		if n.Kind == KindFolder && target != nil {
			if target.ID == n.ID {
				return apperr.New(apperr.KindInvalidState, "cannot move a folder into itself")
			}

			if pathkit.IsDescendant(n.Path, target.Path) {
				return apperr.New(apperr.KindInvalidState, "cannot move a folder into its own subtree")
			}
		}

		if sameParent(n.ParentID, targetParentID) {
			return nil
		}

		return s.relocate(tx, n, n.Name, target, true)
	})

	observeMutation("move", err)

	return err
}

func sameParent(a, b *string) bool {
	aEmpty := a == nil || *a == ""
	bEmpty := b == nil || *b == ""

	if aEmpty || bEmpty {
		return aEmpty && bEmpty
	}

	return *a == *b
}
