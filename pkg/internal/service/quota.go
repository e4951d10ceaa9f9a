package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

// adjustUsedStorage moves the quota ledger by delta bytes inside the
// caller's transaction. The ledger only ever moves in lockstep with the
// file create or permanent delete that caused it.
func adjustUsedStorage(tx *gorm.DB, userID string, delta int64) error {
	if delta == 0 {
		return nil
	}

	res := tx.Model(&model.User{}).Where("id = ?", userID).
		Update("used_storage", gorm.Expr("used_storage + ?", delta))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		return nil
	}

	// First mutation for this user creates the ledger row.
	user := model.User{
		ID:          userID,
		UsedStorage: delta,
		Plan:        configs.GetConfig().Quota.DefaultPlan,
	}

	if err := tx.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race; apply the delta to the winner's row.
			return tx.Model(&model.User{}).Where("id = ?", userID).
				Update("used_storage", gorm.Expr("used_storage + ?", delta)).Error
		}

		return err
	}

	return nil
}

// loadLedger fetches the user's quota row, returning a zero ledger for a
// user who has not stored anything yet.
func loadLedger(tx *gorm.DB, userID string) (model.User, error) {
	var user model.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{ID: userID, Plan: configs.GetConfig().Quota.DefaultPlan}, nil
		}

		return model.User{}, err
	}

	return user, nil
}

// Usage reports the user's quota ledger and plan ceiling.
func (s *DriveService) Usage(ctx context.Context, userID string) (types.UsageResponse, error) {
	user, err := loadLedger(s.dbClient.GetDB().WithContext(ctx), userID)
	if err != nil {
		return types.UsageResponse{}, err
	}

	plan := user.Plan
	if plan == "" {
		plan = configs.GetConfig().Quota.DefaultPlan
	}

	return types.UsageResponse{
		UsedBytes:  user.UsedStorage,
		LimitBytes: configs.GetConfig().Quota.PlanLimitBytes(plan),
		Plan:       plan,
	}, nil
}
