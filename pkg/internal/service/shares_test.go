package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/storage/kv"
	"github.com/drivevault/drivevault/pkg/internal/types"
)

func newTestShareService(t *testing.T) (*DriveService, *ShareService) {
	t.Helper()

	drive, _ := newTestService(t)

	cfg := configs.GetConfig()
	cfg.Share.SessionSecret = "test-secret"
	cfg.Share.SessionTTLMinutes = 60

	return drive, newShareService(drive.dbClient, nil)
}

func TestCreateShareTargetsExactlyOneEntity(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, drive, testUser, "docs", nil)
	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	_, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("neither target: got %v, want validation error", err)
	}

	_, err = shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID, FolderID: &folder.ID})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("both targets: got %v, want validation error", err)
	}

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FolderID: &folder.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(info.Token, "sh_") || len(info.Token) < 21 {
		t.Errorf("token %q is too guessable", info.Token)
	}
}

func TestShareTrashedTargetRejected(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)
	if err := drive.Trash(ctx, testUser, KindFile, file.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	_, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID})
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("share trashed: got %v, want invalid state", err)
	}
}

func TestResolveAndOpenAccess(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	link, err := shares.ResolveShare(ctx, info.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	access, err := shares.ValidateAccess(ctx, link, "", "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if access.Status != types.AccessAuthorized {
		t.Errorf("status = %q, want authorized", access.Status)
	}

	target, err := shares.GetTarget(ctx, link)
	if err != nil {
		t.Fatalf("target: %v", err)
	}

	if target.File == nil || target.File.ID != file.ID {
		t.Errorf("target = %+v", target)
	}

	if _, err := shares.ResolveShare(ctx, "sh_nope"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown token: got %v, want not found", err)
	}
}

func TestPasswordGatedAccess(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID, Password: "hunter22"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	link, err := shares.ResolveShare(ctx, info.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	access, err := shares.ValidateAccess(ctx, link, "", "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if access.Status != types.AccessPasswordRequired {
		t.Errorf("no credentials: status = %q", access.Status)
	}

	if _, err := shares.ValidateAccess(ctx, link, "wrong", ""); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("wrong password: got %v, want forbidden", err)
	}

	access, err = shares.ValidateAccess(ctx, link, "hunter22", "")
	if err != nil {
		t.Fatalf("right password: %v", err)
	}

	if access.Status != types.AccessAuthorized || access.Session == "" {
		t.Fatalf("access = %+v, want authorized with session", access)
	}

	// The minted session works for this token and only this token.
	again, err := shares.ValidateAccess(ctx, link, "", access.Session)
	if err != nil || again.Status != types.AccessAuthorized {
		t.Errorf("session replay: %+v, %v", again, err)
	}

	if verifyShareSession("sh_othertoken", access.Session) {
		t.Error("session must not authorize a different token")
	}
}

func TestExpiredShare(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID, ExpiresInDays: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := drive.dbClient.GetDB().Model(&model.ShareLink{}).
		Where("id = ?", info.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("age the link: %v", err)
	}

	link, err := shares.ResolveShare(ctx, info.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	access, err := shares.ValidateAccess(ctx, link, "", "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if access.Status != types.AccessExpired {
		t.Errorf("status = %q, want expired", access.Status)
	}
}

func TestResolveShareCacheHonorsLinkExpiry(t *testing.T) {
	drive, _ := newTestShareService(t)
	ctx := context.Background()

	cfg := configs.GetConfig()
	oldTTL := cfg.KV.TTLMinutes
	cfg.KV.TTLMinutes = 30

	defer func() { cfg.KV.TTLMinutes = oldTTL }()

	store, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	shares := newShareService(drive.dbClient, &kv.Client{KVStore: store})

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	open, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := shares.ResolveShare(ctx, open.Token); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if _, err := store.Get(ctx, shareCacheKey(open.Token)); err != nil {
		t.Errorf("non-expiring link should be cached: %v", err)
	}

	expiring, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID, ExpiresInDays: 1})
	if err != nil {
		t.Fatalf("create expiring: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := drive.dbClient.GetDB().Model(&model.ShareLink{}).
		Where("id = ?", expiring.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("age the link: %v", err)
	}

	// The lapsed link still resolves (expiry is reported at access time),
	// but it must not enter the cache.
	if _, err := shares.ResolveShare(ctx, expiring.Token); err != nil {
		t.Fatalf("resolve expired: %v", err)
	}

	if _, err := store.Get(ctx, shareCacheKey(expiring.Token)); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expired link cached: got %v, want not found", err)
	}
}

func TestListSubtreeScope(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	shared := mustCreateFolder(t, drive, testUser, "shared", nil)
	inner := mustCreateFolder(t, drive, testUser, "inner", &shared.ID)
	mustCreateFile(t, drive, testUser, "a.txt", &shared.ID, 1)
	outside := mustCreateFolder(t, drive, testUser, "outside", nil)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FolderID: &shared.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	link, err := shares.ResolveShare(ctx, info.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	resp, err := shares.ListSubtree(ctx, link, nil, types.ListQuery{})
	if err != nil {
		t.Fatalf("list root: %v", err)
	}

	if len(resp.Folders) != 1 || len(resp.Files) != 1 {
		t.Errorf("root level = %d folders / %d files, want 1/1", len(resp.Folders), len(resp.Files))
	}

	if _, err := shares.ListSubtree(ctx, link, &inner.ID, types.ListQuery{}); err != nil {
		t.Errorf("descendant listing: %v", err)
	}

	_, err = shares.ListSubtree(ctx, link, &outside.ID, types.ListQuery{})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("outside scope: got %v, want forbidden", err)
	}
}

func TestTrashedSharedRootBlocksLink(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	shared := mustCreateFolder(t, drive, testUser, "shared", nil)
	mustCreateFile(t, drive, testUser, "a.txt", &shared.ID, 1)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FolderID: &shared.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := drive.Trash(ctx, testUser, KindFolder, shared.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	link, err := shares.ResolveShare(ctx, info.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if _, err := shares.ListSubtree(ctx, link, nil, types.ListQuery{}); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("trashed root listing: got %v, want forbidden", err)
	}

	if _, err := shares.GetTarget(ctx, link); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("trashed root target: got %v, want forbidden", err)
	}
}

func TestRevokeShare(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := shares.RevokeShare(ctx, "mallory@example.com", info.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("cross-tenant revoke: got %v, want forbidden", err)
	}

	if err := shares.RevokeShare(ctx, testUser, info.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := shares.ResolveShare(ctx, info.Token); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("resolve after revoke: got %v, want not found", err)
	}
}

func TestPermanentDeleteDropsShareLinks(t *testing.T) {
	drive, shares := newTestShareService(t)
	ctx := context.Background()

	file := mustCreateFile(t, drive, testUser, "a.txt", nil, 1)

	info, err := shares.CreateShare(ctx, testUser, types.CreateShareRequest{FileID: &file.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := drive.PermanentDelete(ctx, testUser, KindFile, file.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := shares.ResolveShare(ctx, info.Token); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("resolve after delete: got %v, want not found", err)
	}
}
