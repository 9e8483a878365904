package exportretention

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	filestorage "personnel-admin/lib/file-storage"
	baseworker "personnel-admin/lib/utils/base-worker"
)

const (
	workerName    = "ExportRetentionWorker"
	firstRunDelay = time.Minute
	runInterval   = 6 * time.Hour
)

// StartWorker периодически удаляет из архива выгрузки старше retentionDays.
// При retentionDays <= 0 или без архива очистка не запускается.
func StartWorker(ctx context.Context, archive filestorage.Provider, retentionDays int) {
	if archive == nil || retentionDays <= 0 {
		return
	}
	worker := baseworker.NewInstance(workerName, firstRunDelay, runInterval)
	go worker.Run(ctx, Job(archive, retentionDays, time.Now))
}

// Job один проход очистки архива
func Job(archive filestorage.Provider, retentionDays int, now func() time.Time) baseworker.JobFunc {
	return func(ctx context.Context) error {
		before := now().AddDate(0, 0, -retentionDays)
		removed, err := archive.RemoveExpired(ctx, before)
		if removed > 0 {
			log.WithField("worker_name", workerName).
				WithField("removed", removed).
				WithField("before", before.Format(time.DateOnly)).
				Info("удалены устаревшие выгрузки")
		}
		return err
	}
}
