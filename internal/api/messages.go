package api

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by Login and RefreshToken.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GetFolderRequest selects a folder by id; "home" or "" selects the root.
type GetFolderRequest struct {
	FolderID string `json:"folder_id"`
}

type FolderEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Modified string `json:"modified"`
}

// FileEntry is a file row of a listing. Size is human readable, Bytes exact.
type FileEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     string `json:"size"`
	Bytes    int64  `json:"bytes"`
	Modified string `json:"modified"`
}

// FolderListing is the content of one folder. ParentID is empty for the root.
type FolderListing struct {
	FolderID string        `json:"folder_id"`
	Name     string        `json:"name"`
	ParentID string        `json:"parent_id,omitempty"`
	IsRoot   bool          `json:"is_root"`
	Folders  []FolderEntry `json:"folders"`
	Files    []FileEntry   `json:"files"`
}

type CreateFolderRequest struct {
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
}

type CreateFolderResponse struct {
	Folder FolderEntry `json:"folder"`
}

type RenameFolderRequest struct {
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
}

type DeleteFolderRequest struct {
	FolderID string `json:"folder_id"`
}

// FolderRef names the folder a client should show after a mutation.
type FolderRef struct {
	FolderID string `json:"folder_id"`
}

type UploadFileRequest struct {
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type,omitempty"`
	Content  []byte `json:"content"`
}

type UploadFileResponse struct {
	File FileEntry `json:"file"`
}

type DownloadFileRequest struct {
	FileID string `json:"file_id"`
}

type DownloadFileResponse struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"content"`
}

type DeleteFileRequest struct {
	FileID string `json:"file_id"`
}
