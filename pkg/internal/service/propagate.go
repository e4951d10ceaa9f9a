package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/drivevault/drivevault/pkg/internal/model"
)

// prefixRewriteExpr builds the SQL expression replacing the first
// len(oldPrefix) characters of path with newPrefix. MySQL has no || operator
// unless PIPES_AS_CONCAT is set, so it gets CONCAT.
func prefixRewriteExpr(tx *gorm.DB, oldPrefix, newPrefix string) clause.Expr {
	from := len(oldPrefix) + 1 // SUBSTR is 1-based

	if tx.Dialector.Name() == "mysql" {
		return gorm.Expr("CONCAT(?, SUBSTRING(path, ?))", newPrefix, from)
	}

	return gorm.Expr("? || SUBSTR(path, ?)", newPrefix, from)
}

// propagateSubtree rewrites the materialized path of every active descendant
// under oldPrefix, one bulk UPDATE per entity kind. It runs inside the
// transaction of the rename/move that changed the prefix, so readers never
// observe a half-rewritten subtree. Trashed descendants keep their flattened
// trash path and are excluded.
func propagateSubtree(tx *gorm.DB, userID, oldPrefix, newPrefix string) error {
	expr := prefixRewriteExpr(tx, oldPrefix, newPrefix)
	pattern := subtreePattern(oldPrefix)

	if err := tx.Model(&model.Folder{}).
		Where("user_id = ? AND is_trash = ? AND path LIKE ? ESCAPE '#'", userID, false, pattern).
		Update("path", expr).Error; err != nil {
		return err
	}

	return tx.Model(&model.File{}).
		Where("user_id = ? AND is_trash = ? AND path LIKE ? ESCAPE '#'", userID, false, pattern).
		Update("path", expr).Error
}

// retargetSubtreeTrash moves every descendant under oldPrefix into (or out
// of) the trash partition while rebasing its path onto newPrefix. Used by
// the trash/restore cascade so a folder's subtree changes partition with it.
func retargetSubtreeTrash(tx *gorm.DB, userID, oldPrefix, newPrefix string, fromTrash, toTrash bool) error {
	expr := prefixRewriteExpr(tx, oldPrefix, newPrefix)
	pattern := subtreePattern(oldPrefix)
	updates := map[string]any{
		"path":     expr,
		"is_trash": toTrash,
	}

	if err := tx.Model(&model.Folder{}).
		Where("user_id = ? AND is_trash = ? AND path LIKE ? ESCAPE '#'", userID, fromTrash, pattern).
		Updates(updates).Error; err != nil {
		return err
	}

	return tx.Model(&model.File{}).
		Where("user_id = ? AND is_trash = ? AND path LIKE ? ESCAPE '#'", userID, fromTrash, pattern).
		Updates(updates).Error
}
