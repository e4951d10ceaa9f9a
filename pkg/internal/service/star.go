package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/model"
)

// SetStarred sets the starred flag to an explicit value, so repeated client
// retries are no-ops. Trashed entities must be restored first.
func (s *DriveService) SetStarred(ctx context.Context, userID string, kind Kind, id string, starred bool) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		n, err := loadNode(tx, userID, kind, id)
		if err != nil {
			return err
		}

		if n.IsTrash {
			return apperr.Newf(apperr.KindInvalidState, "%s is in the trash", n.Kind)
		}

		if n.IsStarred == starred {
			return nil
		}

		switch n.Kind {
		case KindFolder:
			return tx.Model(&model.Folder{}).Where("id = ?", n.ID).
				Update("is_starred", starred).Error
		case KindFile:
			return tx.Model(&model.File{}).Where("id = ?", n.ID).
				Update("is_starred", starred).Error
		}

		return apperr.Newf(apperr.KindInternal, "unknown entity kind %q", n.Kind)
	})

	observeMutation("star", err)

	return err
}
