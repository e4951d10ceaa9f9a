package types

// TrashListResponse lists the user's trashed entities.
type TrashListResponse struct {
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Size    int          `json:"size"`
	Folders []FolderInfo `json:"folders"`
	Files   []FileInfo   `json:"files"`
}

// PurgeResponse reports a permanent bulk deletion (empty-trash or the
// retention sweep).
type PurgeResponse struct {
	RemovedFolders int   `json:"removed_folders"`
	RemovedFiles   int   `json:"removed_files"`
	FreedBytes     int64 `json:"freed_bytes"`
}
