// Package model defines the persisted entities of the virtual filesystem.
//
// The materialized Path column is derived state: the source of truth for an
// entity's position is its parent pointer plus its display name. Every
// structural mutation keeps Path in sync, including bulk prefix rewrites for
// whole subtrees.
package model

import (
	"time"
)

// TrashRoot is the flattened namespace that trashed entities are moved into.
// Uniqueness inside it is independent of the original folder structure.
const TrashRoot = "/trash"

// Folder is a node of the per-user folder tree. The adjacency is ID-based
// (ParentID), never embedded pointers; subtree queries go through Path
// prefixes.
type Folder struct {
	ID     string `gorm:"primaryKey;size:36"                                     json:"id"`
	UserID string `gorm:"size:255;index:idx_folders_user_path,unique,priority:1;index:idx_folders_user_parent,priority:1" json:"user_id"`
	Name   string `gorm:"size:255"                                               json:"name"`
	// Path is unique per (user, trash partition); active and trashed
	// entities live in disjoint namespaces.
	Path      string    `gorm:"size:1024;index:idx_folders_user_path,unique,priority:2" json:"path"`
	ParentID  *string   `gorm:"size:36;index:idx_folders_user_parent,priority:2"        json:"parent_id,omitempty"`
	IsTrash   bool      `gorm:"index:idx_folders_user_path,unique,priority:3"           json:"is_trash"`
	IsStarred bool      `json:"is_starred"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Folder) TableName() string { return "folders" }

// FileType is the coarse media category assigned by the upload intake.
type FileType string

const (
	FileTypeImage    FileType = "IMAGE"
	FileTypeVideo    FileType = "VIDEO"
	FileTypeAudio    FileType = "AUDIO"
	FileTypePDF      FileType = "PDF"
	FileTypeDocument FileType = "DOCUMENT"
)

// ValidFileType reports whether t is a known category.
func ValidFileType(t FileType) bool {
	switch t {
	case FileTypeImage, FileTypeVideo, FileTypeAudio, FileTypePDF, FileTypeDocument:
		return true
	default:
		return false
	}
}

// File is a stored object's metadata row. The binary itself lives in object
// storage under StorageObjectID.
type File struct {
	ID              string    `gorm:"primaryKey;size:36"                                    json:"id"`
	UserID          string    `gorm:"size:255;index:idx_files_user_path,unique,priority:1;index:idx_files_user_folder,priority:1" json:"user_id"`
	Name            string    `gorm:"size:512"                                              json:"name"`
	Path            string    `gorm:"size:1024;index:idx_files_user_path,unique,priority:2" json:"path"`
	FolderID        *string   `gorm:"size:36;index:idx_files_user_folder,priority:2"        json:"folder_id,omitempty"`
	Size            int64     `gorm:"index"                                                 json:"size"`
	Type            FileType  `gorm:"size:16"                                               json:"type"`
	FileURL         string    `gorm:"size:2048"                                             json:"file_url"`
	ThumbnailURL    string    `gorm:"size:2048"                                             json:"thumbnail_url,omitempty"`
	StorageObjectID string    `gorm:"size:1024"                                             json:"storage_object_id"`
	IsTrash         bool      `gorm:"index:idx_files_user_path,unique,priority:3"           json:"is_trash"`
	IsStarred       bool      `json:"is_starred"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (File) TableName() string { return "files" }

// ShareLink grants scoped read access to exactly one file or one folder
// subtree via an opaque token.
type ShareLink struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:255;index"     json:"user_id"`
	// Exactly one of FileID / FolderID is set.
	FileID       *string    `gorm:"size:36;index"              json:"file_id,omitempty"`
	FolderID     *string    `gorm:"size:36;index"              json:"folder_id,omitempty"`
	Token        string     `gorm:"size:64;uniqueIndex"        json:"token"`
	PasswordHash string     `gorm:"size:128"                   json:"-"`
	ExpiresAt    *time.Time `gorm:"index"                      json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (ShareLink) TableName() string { return "share_links" }

// User carries the per-tenant quota ledger. UsedStorage moves only in
// lockstep with file creation and permanent deletion, inside the same
// transaction.
type User struct {
	ID          string    `gorm:"primaryKey;size:255" json:"id"`
	UsedStorage int64     `json:"used_storage"`
	Plan        string    `gorm:"size:64"             json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// All returns every model for AutoMigrate.
func All() []any {
	return []any{&Folder{}, &File{}, &ShareLink{}, &User{}}
}
