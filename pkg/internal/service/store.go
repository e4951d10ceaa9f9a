package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

// Kind distinguishes the two entity kinds sharing one path namespace.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// node is a uniform in-transaction view over a folder or file row. The
// structural operations are kind-agnostic; only persistence differs.
type node struct {
	Kind      Kind
	ID        string
	UserID    string
	Name      string
	Path      string
	ParentID  *string
	IsTrash   bool
	IsStarred bool
	Size      int64 // files only
}

func folderNode(f *model.Folder) *node {
	return &node{
		Kind:      KindFolder,
		ID:        f.ID,
		UserID:    f.UserID,
		Name:      f.Name,
		Path:      f.Path,
		ParentID:  f.ParentID,
		IsTrash:   f.IsTrash,
		IsStarred: f.IsStarred,
	}
}

func fileNode(f *model.File) *node {
	return &node{
		Kind:      KindFile,
		ID:        f.ID,
		UserID:    f.UserID,
		Name:      f.Name,
		Path:      f.Path,
		ParentID:  f.FolderID,
		IsTrash:   f.IsTrash,
		IsStarred: f.IsStarred,
		Size:      f.Size,
	}
}

// inTx runs fn in one transaction. Postgres and MySQL get serializable
// isolation so the collision-check read and the write serialize against
// concurrent mutations of the same path namespace; the sqlite drivers reject
// explicit isolation levels and are already serialized by the single writer.
func (s *DriveService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	opts := &sql.TxOptions{}

	switch s.dbClient.GetDB().Dialector.Name() {
	case "postgres", "mysql":
		opts.Isolation = sql.LevelSerializable
	}

	err := s.dbClient.GetDB().WithContext(ctx).Transaction(fn, opts)

	// A duplicate-key violation means a concurrent transaction won the race
	// for this path after our collision check; same outcome as losing it
	// before.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.New(apperr.KindDuplicatePath, "an entity already exists at this path")
	}

	return err
}

// loadNode fetches an entity by kind and id, enforcing ownership.
func loadNode(tx *gorm.DB, userID string, kind Kind, id string) (*node, error) {
	switch kind {
	case KindFolder:
		var f model.Folder
		if err := tx.First(&f, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.New(apperr.KindNotFound, "folder not found")
			}

			return nil, err
		}

		if f.UserID != userID {
			return nil, apperr.New(apperr.KindForbidden, "folder belongs to another user")
		}

		return folderNode(&f), nil
	case KindFile:
		var f model.File
		if err := tx.First(&f, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.New(apperr.KindNotFound, "file not found")
			}

			return nil, err
		}

		if f.UserID != userID {
			return nil, apperr.New(apperr.KindForbidden, "file belongs to another user")
		}

		return fileNode(&f), nil
	}

	return nil, apperr.Newf(apperr.KindInternal, "unknown entity kind %q", kind)
}

// loadParentFolder resolves a create/move target folder. A nil id means the
// root and yields (nil, nil).
func loadParentFolder(tx *gorm.DB, userID string, id *string) (*node, error) {
	if id == nil || *id == "" {
		return nil, nil
	}

	parent, err := loadNode(tx, userID, KindFolder, *id)
	if err != nil {
		return nil, err
	}

	if parent.IsTrash {
		return nil, apperr.New(apperr.KindInvalidState, "target folder is in the trash")
	}

	return parent, nil
}

// saveNodePosition persists the position-bearing columns of a node (name,
// path, parent pointer, trash flag).
func saveNodePosition(tx *gorm.DB, n *node) error {
	updates := map[string]any{
		"name":     n.Name,
		"path":     n.Path,
		"is_trash": n.IsTrash,
	}

	switch n.Kind {
	case KindFolder:
		updates["parent_id"] = n.ParentID

		return tx.Model(&model.Folder{}).Where("id = ?", n.ID).Updates(updates).Error
	case KindFile:
		updates["folder_id"] = n.ParentID

		return tx.Model(&model.File{}).Where("id = ?", n.ID).Updates(updates).Error
	}

	return apperr.Newf(apperr.KindInternal, "unknown entity kind %q", n.Kind)
}

// pathExists probes both entity kinds for an occupant of (userID, path)
// within the given trash partition, optionally excluding one entity.
func pathExists(tx *gorm.DB, userID, path string, isTrash bool, exclude *node) (bool, error) {
	var excludeFolder, excludeFile string

	if exclude != nil {
		switch exclude.Kind {
		case KindFolder:
			excludeFolder = exclude.ID
		case KindFile:
			excludeFile = exclude.ID
		}
	}

	var count int64

	q := tx.Model(&model.Folder{}).
		Where("user_id = ? AND path = ? AND is_trash = ?", userID, path, isTrash)
	if excludeFolder != "" {
		q = q.Where("id <> ?", excludeFolder)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	if count > 0 {
		return true, nil
	}

	q = tx.Model(&model.File{}).
		Where("user_id = ? AND path = ? AND is_trash = ?", userID, path, isTrash)
	if excludeFile != "" {
		q = q.Where("id <> ?", excludeFile)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// orderClause renders the validated sort for one entity kind. Folders have
// no size column; a size sort orders them by name instead so the folder half
// of a mixed listing cannot fail.
func orderClause(q types.ListQuery, kind Kind) string {
	if kind == KindFolder && q.Sort == "size" {
		return "name " + q.Order
	}

	return q.OrderClause()
}

// escapeLike neutralizes LIKE wildcards in a path prefix. Slugs use "_",
// which LIKE treats as a single-character wildcard; an unescaped prefix
// would match (and then corrupt) sibling subtrees. '#' is the escape
// character because it is a plain literal in every supported dialect.
func escapeLike(s string) string {
	r := strings.NewReplacer("#", "##", "%", "#%", "_", "#_")

	return r.Replace(s)
}

// subtreePattern is the LIKE pattern matching strict descendants of prefix,
// for use with ESCAPE '#'.
func subtreePattern(prefix string) string {
	return escapeLike(prefix) + "/%"
}
