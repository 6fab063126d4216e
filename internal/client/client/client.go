package client

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/api"
)

// Client is the drive API as seen by the CLI. Folder and file calls need a
// prior successful Login.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout()
	IsLoggedIn() bool

	GetFolder(ctx context.Context, folderID string) (*api.FolderListing, error)
	CreateFolder(ctx context.Context, parentID, name string) (*api.FolderEntry, error)
	RenameFolder(ctx context.Context, folderID, name string) (string, error)
	DeleteFolder(ctx context.Context, folderID string) (string, error)
	Upload(ctx context.Context, folderID, name string, content []byte) (*api.FileEntry, error)
	Download(ctx context.Context, fileID string) (*api.DownloadFileResponse, error)
	DeleteFile(ctx context.Context, fileID string) (string, error)
}

var _ Client = (*GRPCClient)(nil)
