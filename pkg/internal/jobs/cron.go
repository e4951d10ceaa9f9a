// Package jobs registers the recurring background jobs.
package jobs

import (
	"context"
	"time"

	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/service"
	"github.com/drivevault/drivevault/pkg/log"
	"github.com/drivevault/drivevault/pkg/scheduler"
)

// TrashPurgeJob is the retention sweep permanently deleting trashed
// entities past the configured retention window.
const TrashPurgeJob = "trash_purge"

// InitCronJobs registers the recurring jobs. The context must carry the
// storage manager; jobs build their services from it at run time.
func InitCronJobs(ctx context.Context, s *scheduler.Scheduler) error {
	cfg := configs.GetConfig().Trash
	if !cfg.PurgeEnabled {
		log.Logger().Info().Msg("trash purge job disabled")

		return nil
	}

	return s.AddCron(TrashPurgeJob, cfg.PurgeCron, runTrashPurge, ctx)
}

// runTrashPurge sweeps every tenant with expired trash. Per-user failures
// are logged and skipped; one broken tenant must not stall the others.
func runTrashPurge(ctx context.Context) {
	l := log.Logger()
	cfg := configs.GetConfig().Trash
	before := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	svc := service.NewDriveService(ctx)

	users, err := svc.UsersWithExpiredTrash(ctx, before)
	if err != nil {
		l.Error().Err(err).Msg("trash purge: listing users failed")

		return
	}

	for _, user := range users {
		resp, err := svc.AutoClean(ctx, user, before)
		if err != nil {
			l.Error().Err(err).Str("user", user).Msg("trash purge failed for user")

			continue
		}

		l.Info().
			Str("user", user).
			Int("folders", resp.RemovedFolders).
			Int("files", resp.RemovedFiles).
			Int64("freed_bytes", resp.FreedBytes).
			Msg("trash purge completed for user")
	}
}
