package types

import "time"

// CreateFileRequest registers an uploaded object's metadata. The binary is
// already in object storage when this arrives; upload intake supplies the
// storage fields.
type CreateFileRequest struct {
	Name            string  `json:"name"              rule:"required,min=1,max=512"`
	FolderID        *string `json:"folder_id"         rule:"omitempty,uuid4"`
	Size            int64   `json:"size"              rule:"min=0"`
	Type            string  `json:"type"              rule:"required,oneof=IMAGE VIDEO AUDIO PDF DOCUMENT"`
	FileURL         string  `json:"file_url"          rule:"required,max=2048"`
	ThumbnailURL    string  `json:"thumbnail_url"     rule:"omitempty,max=2048"`
	StorageObjectID string  `json:"storage_object_id" rule:"required,max=1024"`
}

// FileInfo is the API view of a file row.
type FileInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	FolderID     *string   `json:"folder_id,omitempty"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsTrash      bool      `json:"is_trash"`
	IsStarred    bool      `json:"is_starred"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StarredResponse lists starred folders and files.
type StarredResponse struct {
	Folders []FolderInfo `json:"folders"`
	Files   []FileInfo   `json:"files"`
}
