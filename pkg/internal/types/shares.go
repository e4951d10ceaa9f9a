package types

import "time"

// CreateShareRequest creates a share link for exactly one file or folder.
type CreateShareRequest struct {
	FileID        *string `json:"file_id"         rule:"omitempty,uuid4"`
	FolderID      *string `json:"folder_id"       rule:"omitempty,uuid4"`
	Password      string  `json:"password"        rule:"omitempty,min=4,max=128"`
	ExpiresInDays int     `json:"expires_in_days" rule:"min=0"`
}

// ShareInfo is the owner's view of a share link.
type ShareInfo struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	FileID    *string    `json:"file_id,omitempty"`
	FolderID  *string    `json:"folder_id,omitempty"`
	Protected bool       `json:"protected"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ShareListResponse lists the owner's share links.
type ShareListResponse struct {
	Total  int64       `json:"total"`
	Shares []ShareInfo `json:"shares"`
}

// ShareAccessRequest exchanges a share password for a session credential.
type ShareAccessRequest struct {
	Password string `json:"password" rule:"required,min=1,max=128"`
}

// AccessStatus is the outcome of validating anonymous access to a share.
type AccessStatus string

const (
	AccessAuthorized       AccessStatus = "authorized"
	AccessPasswordRequired AccessStatus = "password_required"
	AccessExpired          AccessStatus = "expired"
)

// ShareAccessResponse reports the access outcome; Session is set only when
// a password check just succeeded.
type ShareAccessResponse struct {
	Status  AccessStatus `json:"status"`
	Session string       `json:"session,omitempty"`
}

// SharedItemsResponse lists a shared subtree level for an anonymous viewer.
type SharedItemsResponse struct {
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Size    int          `json:"size"`
	Folders []FolderInfo `json:"folders"`
	Files   []FileInfo   `json:"files"`
}

// SharedTargetResponse describes what a token points at.
type SharedTargetResponse struct {
	Protected bool        `json:"protected"`
	Folder    *FolderInfo `json:"folder,omitempty"`
	File      *FileInfo   `json:"file,omitempty"`
}
