// Package storage aggregates the storage resources (DB, S3, KV).
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// handle error
//	}
//
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	dbc "github.com/drivevault/drivevault/pkg/internal/storage/db"
	kvc "github.com/drivevault/drivevault/pkg/internal/storage/kv"
	s3c "github.com/drivevault/drivevault/pkg/internal/storage/s3"
	nlog "github.com/drivevault/drivevault/pkg/log"
)

// Manager aggregates all storage resources.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	KV *kvc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init initializes the default storage from global config. Repeated calls
// return the already-initialized instance.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		if dbi, e := dbc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		if s3i, e := s3c.New(ctx); e != nil {
			err = e

			return
		} else {
			m.S3 = s3i
		}

		// KV is optional; share resolution degrades to DB reads without it.
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("kv cache unavailable, share cache disabled")
		} else {
			m.KV = kvi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetS3Client returns the S3 client.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient returns the DB client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient returns the KV client (may be nil).
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}
