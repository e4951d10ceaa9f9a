package types

import "time"

// CreateFolderRequest creates a folder under ParentID (nil means root).
type CreateFolderRequest struct {
	Name     string  `json:"name"      rule:"required,min=1,max=255"`
	ParentID *string `json:"parent_id" rule:"omitempty,uuid4"`
}

// RenameRequest changes an entity's display name in place.
type RenameRequest struct {
	NewName string `json:"new_name" rule:"required,min=1,max=255"`
}

// MoveRequest reparents an entity. A nil target means the root.
type MoveRequest struct {
	TargetParentID *string `json:"target_parent_id" rule:"omitempty,uuid4"`
}

// StarRequest sets the starred flag to an explicit value so client retries
// are idempotent.
type StarRequest struct {
	Starred *bool `json:"starred" rule:"required"`
}

// FolderInfo is the API view of a folder row.
type FolderInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	ParentID  *string   `json:"parent_id,omitempty"`
	IsTrash   bool      `json:"is_trash"`
	IsStarred bool      `json:"is_starred"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListChildrenResponse lists the direct children of a folder (or the root).
type ListChildrenResponse struct {
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Size    int          `json:"size"`
	Folders []FolderInfo `json:"folders"`
	Files   []FileInfo   `json:"files"`
}
