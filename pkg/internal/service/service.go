// Package service implements the path-consistency engine: structural
// mutations over the folder/file tree, subtree path propagation, the quota
// ledger and share resolution. Every mutation runs in a single transaction;
// the materialized path column is kept consistent with the parent pointers
// and trash flags across all of them.
package service

import (
	"context"

	ctxPkg "github.com/drivevault/drivevault/pkg/context"
	"github.com/drivevault/drivevault/pkg/internal/storage/db"
	"github.com/drivevault/drivevault/pkg/internal/storage/kv"
)

// ObjectRemover deletes stored objects. *s3.Client satisfies it; tests plug
// in a stub so permanent-delete paths run without object storage.
type ObjectRemover interface {
	RemoveOne(ctx context.Context, objectID string) error
	RemoveMany(ctx context.Context, objectIDs []string) error
}

// DriveService orchestrates the structural mutations of the virtual
// filesystem (create, rename, move, star, trash, restore, delete).
type DriveService struct {
	dbClient *db.Client
	objects  ObjectRemover
	kvClient *kv.Client
}

func NewDriveService(c context.Context) *DriveService {
	return newDriveService(ctxPkg.GetDBClient(c), ctxPkg.GetS3Client(c), ctxPkg.GetKVClient(c))
}

func newDriveService(dbc *db.Client, objects ObjectRemover, kvc *kv.Client) *DriveService {
	return &DriveService{
		dbClient: dbc,
		objects:  objects,
		kvClient: kvc,
	}
}
